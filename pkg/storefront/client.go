// Package storefront provides the public Go SDK for the storefront API.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/cart"
	"github.com/asb-digital/storefront-engine/internal/inquiry"
	"github.com/asb-digital/storefront-engine/internal/variants"
)

// Client is the public SDK client for the storefront API.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL   string
	SessionID string
	Timeout   time.Duration
}

// NewClient creates a new storefront client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8090"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		sessionID:  cfg.SessionID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination"`
}

// Pagination describes a paged list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CataloguePage is one page of catalogue records.
type CataloguePage struct {
	Records    []catalogue.CatalogueRecord
	Pagination Pagination
}

// Catalogues lists catalogue records, optionally relevance-filtered by a
// search term.
func (c *Client) Catalogues(ctx context.Context, page, limit int, search string) (*CataloguePage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}

	env, err := c.do(ctx, http.MethodGet, "/api/v1/catalogues?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var records []catalogue.CatalogueRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("decode catalogues: %w", err)
	}

	result := &CataloguePage{Records: records}
	if env.Pagination != nil {
		result.Pagination = *env.Pagination
	}
	return result, nil
}

// Catalogue retrieves one catalogue record by id.
func (c *Client) Catalogue(ctx context.Context, id string) (*catalogue.CatalogueRecord, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/catalogues/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var rec catalogue.CatalogueRecord
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return &rec, nil
}

// Options retrieves the derived chassis and variant options for a record.
func (c *Client) Options(ctx context.Context, id string) (*variants.Options, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/catalogues/"+url.PathEscape(id)+"/options", nil)
	if err != nil {
		return nil, err
	}
	var opts variants.Options
	if err := json.Unmarshal(env.Data, &opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return &opts, nil
}

// FilterVariants narrows a record's variant combinations by selection.
func (c *Client) FilterVariants(ctx context.Context, id string, sel variants.Selection) ([]catalogue.VariantCombination, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/catalogues/"+url.PathEscape(id)+"/variants/filter", sel)
	if err != nil {
		return nil, err
	}
	var combinations []catalogue.VariantCombination
	if err := json.Unmarshal(env.Data, &combinations); err != nil {
		return nil, fmt.Errorf("decode variants: %w", err)
	}
	return combinations, nil
}

// CartView is the cart payload returned by cart operations.
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Count int         `json:"count"`
}

// Cart retrieves the session cart.
func (c *Client) Cart(ctx context.Context) (*CartView, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil)
	if err != nil {
		return nil, err
	}
	var view CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &view, nil
}

// AddToCart adds a product (and optional variant combination) to the
// session cart.
func (c *Client) AddToCart(ctx context.Context, catalogueID, combinationID string) (*cart.Line, error) {
	body := map[string]string{"catalogueId": catalogueID}
	if combinationID != "" {
		body["combinationId"] = combinationID
	}
	env, err := c.do(ctx, http.MethodPost, "/api/v1/cart/items", body)
	if err != nil {
		return nil, err
	}
	var line cart.Line
	if err := json.Unmarshal(env.Data, &line); err != nil {
		return nil, fmt.Errorf("decode cart line: %w", err)
	}
	return &line, nil
}

// SetQuantity overwrites a cart line's quantity; zero removes the line.
func (c *Client) SetQuantity(ctx context.Context, lineID string, quantity int) (*CartView, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/v1/cart/items/"+url.PathEscape(lineID), map[string]int{"quantity": quantity})
	if err != nil {
		return nil, err
	}
	var view CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &view, nil
}

// RemoveFromCart deletes a cart line.
func (c *Client) RemoveFromCart(ctx context.Context, lineID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/cart/items/"+url.PathEscape(lineID), nil)
	return err
}

// ClearCart deletes all cart lines.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/cart", nil)
	return err
}

// SubmitInquiry submits a bundle price inquiry.
func (c *Client) SubmitInquiry(ctx context.Context, req inquiry.Request) (*inquiry.Response, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/inquiries", req)
	if err != nil {
		return nil, err
	}
	var resp inquiry.Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		return nil, fmt.Errorf("decode inquiry response: %w", err)
	}
	return &resp, nil
}

// Health checks the service health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%s %s: %s", method, path, env.Message)
	}
	return &env, nil
}
