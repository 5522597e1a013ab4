package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
)

// Client is the remote catalog API contract, one method per remote operation.
type Client interface {
	Login(ctx context.Context, username, password string, expiresInMins int) (*models.LoginResponse, error)
	GetProducts(ctx context.Context, params url.Values) (*models.ProductList, error)
	SearchProducts(ctx context.Context, query string) (*models.ProductList, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, payload models.ProductPayload) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*models.DeleteResult, error)
}
