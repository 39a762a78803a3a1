package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/store"
)

// DefaultTimeout bounds each request when no client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Catalog fetches the product list.
type Catalog interface {
	FetchCatalog(ctx context.Context) ([]store.Product, error)
}

// Orders submits orders.
type Orders interface {
	SubmitOrder(ctx context.Context, req store.OrderRequest) (store.OrderResult, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCDN sets the prefix applied to product image paths.
func WithCDN(cdnURL string) Option {
	return func(c *Client) {
		c.cdnURL = strings.TrimSuffix(cdnURL, "/")
	}
}

// Client talks to the storefront API.
type Client struct {
	baseURL string
	cdnURL  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCatalog returns every product, with image paths resolved against
// the CDN.
func (c *Client) FetchCatalog(ctx context.Context) ([]store.Product, error) {
	const op = "fetch catalog"

	var list productList
	if err := c.do(ctx, op, http.MethodGet, "/product/", nil, &list); err != nil {
		return nil, err
	}

	products := make([]store.Product, len(list.Items))
	for i, p := range list.Items {
		products[i] = p.product(c.cdnURL)
		if !products[i].Category.IsValid() {
			c.logger.Warn("unknown product category",
				zap.String("product", p.ID),
				zap.String("category", p.Category))
		}
	}

	c.logger.Debug("catalog fetched", zap.Int("products", len(products)), zap.Int("total", list.Total))
	return products, nil
}

// SubmitOrder posts req and returns the server's confirmation.
func (c *Client) SubmitOrder(ctx context.Context, req store.OrderRequest) (store.OrderResult, error) {
	const op = "submit order"

	body, err := json.Marshal(newOrderJSON(req))
	if err != nil {
		return store.OrderResult{}, fmt.Errorf("marshal order: %w", err)
	}

	var res orderResultJSON
	if err := c.do(ctx, op, http.MethodPost, "/order", body, &res); err != nil {
		return store.OrderResult{}, err
	}

	c.logger.Info("order accepted", zap.String("id", res.ID), zap.Stringer("total", res.Total))
	return store.OrderResult{ID: res.ID, Total: res.Total}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return &ValidationError{Op: op, Status: resp.StatusCode, Message: msg}
		}
		return &NetworkError{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readErrorMessage extracts the server message from an error response.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return err.Error()
	}
	var e errorJSON
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "empty response"
}
