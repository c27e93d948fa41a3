package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the storefront API service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a catalog client for the given base URL,
// e.g. "http://127.0.0.1:8000".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every product in the catalog.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get fetches a single product by ID.
func (c *Client) Get(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.getJSON(ctx, "/api/products/"+strconv.Itoa(id), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

// Search runs a relevance search. The returned product order is the
// service's ranking and must not be re-sorted.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.MinPrice != nil {
		q.Set("min_price", req.MinPrice.String())
	}
	if req.MaxPrice != nil {
		q.Set("max_price", req.MaxPrice.String())
	}

	var resp SearchResponse
	if err := c.getJSON(ctx, "/api/search", q, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", req.Query, err)
	}
	return &resp, nil
}

// Refresh asks the service to re-import products from its external feeds.
func (c *Client) Refresh(ctx context.Context) (*RefreshResult, error) {
	var result RefreshResult
	if err := c.getJSON(ctx, "/api/refresh-products", nil, &result); err != nil {
		return nil, fmt.Errorf("refresh products: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
