package services

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
)

// StoreErrorMessage is recorded when a failure has no message of its own.
const StoreErrorMessage = "Something went wrong while communicating with the server"

// CatalogState is the observable state of a CatalogStore. Error is empty
// unless the most recent operation failed.
type CatalogState struct {
	Products       []models.Product
	CurrentProduct *models.Product
	Categories     []models.Category
	IsLoading      bool
	Error          string
}

func (st CatalogState) clone() CatalogState {
	out := st
	out.Products = make([]models.Product, len(st.Products))
	for i, p := range st.Products {
		out.Products[i] = p.Clone()
	}
	if st.CurrentProduct != nil {
		p := st.CurrentProduct.Clone()
		out.CurrentProduct = &p
	}
	out.Categories = slices.Clone(st.Categories)
	return out
}

// CatalogStore mirrors the remote catalog in memory.
//
// Every operation clears the previous error, marks the store loading for the
// duration of its remote calls and records a failure in State.Error.
// Operations are not serialized: overlapping calls each flip IsLoading and the
// later one to finish decides the final state.
type CatalogStore struct {
	client client.Client
	logger logging.Logger

	mu    sync.RWMutex
	state CatalogState

	subs observers[CatalogState]
}

func NewCatalogStore(c client.Client, logger logging.Logger) *CatalogStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &CatalogStore{client: c, logger: logger}
}

// FetchProducts replaces the collection with the full remote catalog.
// Failures are recorded only; the previous collection is kept.
func (s *CatalogStore) FetchProducts(ctx context.Context) {
	s.begin()
	defer s.end()

	list, err := s.client.GetProducts(ctx, url.Values{"limit": []string{"0"}})
	if err != nil {
		s.fail(ctx, "fetch products", err)
		return
	}

	s.update(func(st *CatalogState) {
		st.Products = productsOf(list)
	})
}

// SearchProducts replaces the collection with the products matching query.
func (s *CatalogStore) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	s.begin()
	defer s.end()

	list, err := s.client.SearchProducts(ctx, strings.TrimSpace(query))
	if err != nil {
		s.fail(ctx, "search products", err)
		return nil, err
	}

	products := productsOf(list)
	s.update(func(st *CatalogState) {
		st.Products = products
	})
	return cloneProducts(products), nil
}

// FetchProductByID makes the product current, serving it from the
// collection when present and fetching (then upserting) it otherwise.
func (s *CatalogStore) FetchProductByID(ctx context.Context, id string) (*models.Product, error) {
	s.begin()
	defer s.end()

	numericID, err := parseProductID(id)
	if err != nil {
		s.fail(ctx, "fetch product", err)
		return nil, err
	}

	var cached *models.Product
	s.update(func(st *CatalogState) {
		if i := indexOf(st.Products, numericID); i >= 0 {
			p := st.Products[i].Clone()
			st.CurrentProduct = &p
			c := p.Clone()
			cached = &c
		}
	})
	if cached != nil {
		return cached, nil
	}

	product, err := s.client.GetProductByID(ctx, numericID)
	if err != nil {
		s.fail(ctx, "fetch product", err)
		return nil, err
	}

	s.update(func(st *CatalogState) {
		current := product.Clone()
		st.CurrentProduct = &current
		if i := indexOf(st.Products, product.ID); i >= 0 {
			st.Products[i] = product.Clone()
		} else {
			st.Products = append(st.Products, product.Clone())
		}
	})
	return product, nil
}

// FetchCategories loads the category list once. Failures are recorded only.
func (s *CatalogStore) FetchCategories(ctx context.Context) {
	var cached bool
	s.update(func(st *CatalogState) {
		st.Error = ""
		cached = len(st.Categories) > 0
		if !cached {
			st.IsLoading = true
		}
	})
	if cached {
		return
	}
	defer s.end()

	categories, err := s.client.GetCategories(ctx)
	if err != nil {
		s.fail(ctx, "fetch categories", err)
		return
	}

	s.update(func(st *CatalogState) {
		st.Categories = slices.Clone(categories)
	})
}

// AddNewProduct creates a product and prepends it to the collection unless
// the collection already holds its id or the API returned no id.
func (s *CatalogStore) AddNewProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	s.begin()
	defer s.end()

	created, err := s.client.AddProduct(ctx, payload)
	if err != nil {
		s.fail(ctx, "add product", err)
		return nil, err
	}

	s.update(func(st *CatalogState) {
		if created.ID == 0 || indexOf(st.Products, created.ID) >= 0 {
			return
		}
		st.Products = append([]models.Product{created.Clone()}, st.Products...)
	})
	return created, nil
}

// UpdateExistingProduct updates a product and replaces the matching entry
// in place. Unknown ids leave the collection untouched.
func (s *CatalogStore) UpdateExistingProduct(ctx context.Context, id string, payload models.ProductPayload) (*models.Product, error) {
	s.begin()
	defer s.end()

	numericID, err := parseProductID(id)
	if err != nil {
		s.fail(ctx, "update product", err)
		return nil, err
	}

	updated, err := s.client.UpdateProduct(ctx, numericID, payload)
	if err != nil {
		s.fail(ctx, "update product", err)
		return nil, err
	}

	s.update(func(st *CatalogState) {
		if i := indexOf(st.Products, updated.ID); i >= 0 {
			st.Products[i] = updated.Clone()
		}
		if st.CurrentProduct != nil && st.CurrentProduct.ID == updated.ID {
			current := updated.Clone()
			st.CurrentProduct = &current
		}
	})
	return updated, nil
}

// DeleteExistingProduct deletes a product and drops every entry with its id.
func (s *CatalogStore) DeleteExistingProduct(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	numericID, err := parseProductID(id)
	if err != nil {
		s.fail(ctx, "delete product", err)
		return err
	}

	if _, err := s.client.DeleteProduct(ctx, numericID); err != nil {
		s.fail(ctx, "delete product", err)
		return err
	}

	s.update(func(st *CatalogState) {
		st.Products = slices.DeleteFunc(st.Products, func(p models.Product) bool {
			return p.ID == numericID
		})
		if st.CurrentProduct != nil && st.CurrentProduct.ID == numericID {
			st.CurrentProduct = nil
		}
	})
	return nil
}

func (s *CatalogStore) HasProducts() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Products) > 0
}

// Snapshot returns a copy of the state that shares no memory with the store.
func (s *CatalogStore) Snapshot() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive the state after every change.
func (s *CatalogStore) Subscribe(fn func(CatalogState)) (cancel func()) {
	return s.subs.subscribe(fn)
}

func (s *CatalogStore) begin() {
	s.update(func(st *CatalogState) {
		st.Error = ""
		st.IsLoading = true
	})
}

func (s *CatalogStore) end() {
	s.update(func(st *CatalogState) {
		st.IsLoading = false
	})
}

func (s *CatalogStore) fail(ctx context.Context, op string, err error) {
	msg := errorMessage(err)
	s.logger.Warn(ctx, op+" failed", "error", msg)
	s.update(func(st *CatalogState) {
		st.Error = msg
	})
}

func (s *CatalogStore) update(fn func(st *CatalogState)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.subs.notify(snapshot)
}

// errorMessage returns the message recorded in CatalogState.Error.
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return StoreErrorMessage
	}
	return err.Error()
}

// parseProductID accepts decimal ids, surrounding spaces allowed.
func parseProductID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, common.ErrInvalidProductID
	}
	return n, nil
}

func indexOf(products []models.Product, id int64) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
}

func productsOf(list *models.ProductList) []models.Product {
	if list == nil || list.Products == nil {
		return []models.Product{}
	}
	return cloneProducts(list.Products)
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
