// Package catalog is the typed client for the remote product catalog
// service. Every data operation in the gateway delegates to it.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stitchfold/admin-gateway/pkg/config"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/metrics"
)

// TokenProvider supplies the bearer token for an outgoing request, scoped
// to the caller's context. The client never reads ambient storage.
type TokenProvider interface {
	Token(ctx context.Context) (string, bool)
}

// Client talks to the catalog service over REST.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	metrics *metrics.FormMetrics
}

// NewClient builds a catalog client from config. tokens may be nil for
// anonymous access; m may be nil to skip instrumentation.
func NewClient(cfg config.CatalogConfig, tokens TokenProvider, m *metrics.FormMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		tokens:  tokens,
		metrics: m,
	}
}

// List fetches products matching the query filters.
func (c *Client) List(ctx context.Context, query ListQuery) ([]Product, error) {
	values := url.Values{}
	if query.Gender != "" {
		values.Set("gender", query.Gender)
	}
	if query.FlashSaleOnly {
		values.Set("isFlashSale", "true")
	}
	if query.Sort != "" {
		values.Set("sort", query.Sort)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}

	endpoint := c.baseURL + "/products"
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var result []Product
	if err := c.doJSON(ctx, "list_products", http.MethodGet, endpoint, nil, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBySlug fetches a single product by its slug.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	var result Product
	endpoint := c.baseURL + "/products/" + url.PathEscape(slug)
	if err := c.doJSON(ctx, "get_product", http.MethodGet, endpoint, nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create submits a new product as multipart/form-data.
func (c *Client) Create(ctx context.Context, payload *MultipartPayload) (*Product, error) {
	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding product payload")
	}
	var result Product
	endpoint := c.baseURL + "/products"
	if err := c.doJSON(ctx, "create_product", http.MethodPost, endpoint, body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update patches an existing product as multipart/form-data.
func (c *Client) Update(ctx context.Context, productID string, payload *MultipartPayload) (*Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding product payload")
	}
	var result Product
	endpoint := c.baseURL + "/products/" + url.PathEscape(productID)
	if err := c.doJSON(ctx, "update_product", http.MethodPatch, endpoint, body, contentType, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a product by id.
func (c *Client) Delete(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	endpoint := c.baseURL + "/products/" + url.PathEscape(productID)
	return c.doJSON(ctx, "delete_product", http.MethodDelete, endpoint, nil, "", nil)
}

// Ping verifies the catalog service answers the list endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx, ListQuery{Limit: 1})
	return err
}

func (c *Client) doJSON(ctx context.Context, operation, method, endpoint string, body io.Reader, contentType string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveUpstream(operation, time.Since(start))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
	}
	if len(envelope.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog response missing data envelope")
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog payload")
	}
	return nil
}

// decodeError surfaces the server-provided message when present and falls
// back to a generic one otherwise.
func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	message := ""
	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil && flat.Message != "" {
		message = flat.Message
	}
	if message == "" {
		var nested struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Error.Message != "" {
			message = nested.Error.Message
		}
	}
	if message == "" {
		message = "Operation failed"
	}

	code := codeForStatus(resp.StatusCode)
	return pkgerrors.New(code, message).WithDetails(map[string]any{
		"upstream_status": resp.StatusCode,
	})
}

func codeForStatus(status int) pkgerrors.Code {
	switch {
	case status == http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return pkgerrors.CodeUnauthorized
	case status == http.StatusConflict:
		return pkgerrors.CodeConflict
	case status >= 400 && status < 500:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeDependency
	}
}
