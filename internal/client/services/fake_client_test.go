package services

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/metadata"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupStore(t *testing.T) (*sql.DB, *metadata.SQLiteStore) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, metadata.NewSQLiteStore(db)
}

// ---- fake client ----

// fakeClient implements client.Client for store unit tests.
type fakeClient struct {
	LoginRet *models.LoginResponse
	LoginErr error

	ProductsRet *models.ProductList
	ProductsErr error

	SearchRet *models.ProductList
	SearchErr error

	ProductRet *models.Product
	ProductErr error

	CategoriesRet []models.Category
	CategoriesErr error

	AddRet *models.Product
	AddErr error

	UpdateRet *models.Product
	UpdateErr error

	DeleteErr error

	// argument capture
	LastLoginUser     string
	LastLoginPassword string
	LastLoginExpires  int
	LastParams        url.Values
	LastQuery         string
	LastID            int64
	LastPayload       models.ProductPayload

	Calls map[string]int

	// OnCall runs inside every call, e.g. to inspect store state mid-flight.
	OnCall func(op string)
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) hit(op string) {
	if f.Calls == nil {
		f.Calls = map[string]int{}
	}
	f.Calls[op]++
	if f.OnCall != nil {
		f.OnCall(op)
	}
}

func (f *fakeClient) total() int {
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *fakeClient) Login(_ context.Context, username, password string, expiresInMins int) (*models.LoginResponse, error) {
	f.hit("login")
	f.LastLoginUser, f.LastLoginPassword, f.LastLoginExpires = username, password, expiresInMins
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) GetProducts(_ context.Context, params url.Values) (*models.ProductList, error) {
	f.hit("get_products")
	f.LastParams = params
	if f.ProductsErr != nil {
		return nil, f.ProductsErr
	}
	return f.ProductsRet, nil
}

func (f *fakeClient) SearchProducts(_ context.Context, query string) (*models.ProductList, error) {
	f.hit("search_products")
	f.LastQuery = query
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return f.SearchRet, nil
}

func (f *fakeClient) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	f.hit("get_product")
	f.LastID = id
	if f.ProductErr != nil {
		return nil, f.ProductErr
	}
	return f.ProductRet, nil
}

func (f *fakeClient) GetCategories(context.Context) ([]models.Category, error) {
	f.hit("get_categories")
	if f.CategoriesErr != nil {
		return nil, f.CategoriesErr
	}
	return f.CategoriesRet, nil
}

func (f *fakeClient) AddProduct(_ context.Context, payload models.ProductPayload) (*models.Product, error) {
	f.hit("add_product")
	f.LastPayload = payload
	if f.AddErr != nil {
		return nil, f.AddErr
	}
	return f.AddRet, nil
}

func (f *fakeClient) UpdateProduct(_ context.Context, id int64, payload models.ProductPayload) (*models.Product, error) {
	f.hit("update_product")
	f.LastID, f.LastPayload = id, payload
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return f.UpdateRet, nil
}

func (f *fakeClient) DeleteProduct(_ context.Context, id int64) (*models.DeleteResult, error) {
	f.hit("delete_product")
	f.LastID = id
	if f.DeleteErr != nil {
		return nil, f.DeleteErr
	}
	return &models.DeleteResult{Product: models.Product{ID: id}, IsDeleted: true}, nil
}
