package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/metrics"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "gophcatalog/1.0"

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its Transport is
// wrapped by the bearer token interceptor.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTokenSource sets where the bearer token is read from before each request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *HTTPClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *HTTPClient) { c.metrics = r }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL        string
	defaultHeaders http.Header
	httpClient     *http.Client
	tokens         TokenSource
	timeout        time.Duration
	limiter        *rate.Limiter
	logger         logging.Logger
	metrics        metrics.Recorder
	userAgent      string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logging.Nop(),
		metrics:   metrics.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.defaultHeaders = http.Header{}
	c.defaultHeaders.Set(common.ContentTypeHeaderName, "application/json")
	c.defaultHeaders.Set(common.UserAgentHeaderName, c.userAgent)

	hc := &http.Client{}
	if c.httpClient != nil {
		*hc = *c.httpClient
	}
	hc.Transport = withAuth(hc.Transport, c.tokens)
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = hc

	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string, expiresInMins int) (*models.LoginResponse, error) {
	if expiresInMins <= 0 {
		expiresInMins = common.DefaultSessionMinutes
	}
	req := models.LoginRequest{Username: username, Password: password, ExpiresInMins: expiresInMins}

	var resp models.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProducts lists products. params are forwarded as the query string;
// limit=0 asks for the whole catalog.
func (c *HTTPClient) GetProducts(ctx context.Context, params url.Values) (*models.ProductList, error) {
	var resp models.ProductList
	if err := c.do(ctx, "get_products", http.MethodGet, "/products", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SearchProducts(ctx context.Context, query string) (*models.ProductList, error) {
	var resp models.ProductList
	params := url.Values{"q": []string{query}}
	if err := c.do(ctx, "search_products", http.MethodGet, "/products/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var resp models.Product
	if err := c.do(ctx, "get_product", http.MethodGet, productPath(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetCategories(ctx context.Context) ([]models.Category, error) {
	var resp []models.Category
	if err := c.do(ctx, "get_categories", http.MethodGet, "/products/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddProduct creates a product. The API may acknowledge the create without
// persisting it.
func (c *HTTPClient) AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	var resp models.Product
	if err := c.do(ctx, "add_product", http.MethodPost, "/products/add", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, payload models.ProductPayload) (*models.Product, error) {
	var resp models.Product
	if err := c.do(ctx, "update_product", http.MethodPut, productPath(id), nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct deletes a product. Like AddProduct, the deletion may not be
// persisted remotely.
func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) (*models.DeleteResult, error) {
	var resp models.DeleteResult
	if err := c.do(ctx, "delete_product", http.MethodDelete, productPath(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// do performs one exchange and decodes a 2xx body into out. Any failure is
// returned as a *RequestError.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()
	log := c.logger.With("op", op, "request_id", requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newRequestError(op, err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newRequestError(op, fmt.Errorf("failed to marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return newRequestError(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header = c.defaultHeaders.Clone()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(op, 0, time.Since(start))
		log.Warn(ctx, "api request failed", "method", method, "path", path, "error", err)
		return newRequestError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.ObserveRequest(op, resp.StatusCode, time.Since(start))
	if err != nil {
		return newRequestError(op, fmt.Errorf("failed to read response body: %w", err))
	}

	log.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode, Body: parseErrorBody(data)}
		log.Warn(ctx, "api request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return newRequestError(op, se)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return newRequestError(op, fmt.Errorf("failed to unmarshal response: %w", err))
		}
	}
	return nil
}

// IsRequestError reports whether err came from an HTTPClient operation.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
