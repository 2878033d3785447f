package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CartService defines the cart operations the session layer depends on.
// This interface is implemented by *Client and can be used for testing.
type CartService interface {
	FetchCart(ctx context.Context) (*CartPayload, error)
	AddItem(ctx context.Context, productID string, quantity int) (*CartPayload, error)
	UpdateItem(ctx context.Context, productID string, quantity int) (*CartPayload, error)
	RemoveItem(ctx context.Context, productID string) (*CartPayload, error)
	ClearCart(ctx context.Context) error
	MergeCart(ctx context.Context, items []MergeItem) error
	Checkout(ctx context.Context) (*OrderConfirmation, error)
}

// Ensure Client implements CartService at compile time.
var _ CartService = (*Client)(nil)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu    sync.RWMutex
	token string
}

const (
	defaultAPIBase   = "127.0.0.1:8774"
	defaultUserAgent = "satchel/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client using the provided apiBase host:port value.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetToken installs the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token, returning the client to guest access.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Login exchanges credentials for a session token. The token is installed on
// the client so subsequent cart calls are authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var payload LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.Token) == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	c.SetToken(payload.Token)
	return &payload, nil
}

// FetchCart retrieves the authenticated user's current cart.
func (c *Client) FetchCart(ctx context.Context) (*CartPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload CartPayload
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AddItem asks the server to add or increment a product line and returns the
// canonical cart.
func (c *Client) AddItem(ctx context.Context, productID string, quantity int) (*CartPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	var payload CartPayload
	if err := c.do(ctx, http.MethodPost, "/cart", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateItem asks the server to set an exact quantity for a product line.
// Removal is not implied by any quantity value; use RemoveItem.
func (c *Client) UpdateItem(ctx context.Context, productID string, quantity int) (*CartPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := map[string]any{"quantity": quantity}
	var payload CartPayload
	if err := c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(productID), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RemoveItem asks the server to delete a product line.
func (c *Client) RemoveItem(ctx context.Context, productID string) (*CartPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload CartPayload
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ClearCart asks the server to delete the whole cart.
func (c *Client) ClearCart(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

// MergeCart folds guest-cart lines into the authenticated user's server cart.
// Conflict policy (same product on both sides) is the server's decision.
func (c *Client) MergeCart(ctx context.Context, items []MergeItem) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(items) == 0 {
		return fmt.Errorf("merge requires at least one item")
	}
	body := map[string]any{"items": items}
	var payload MergeResult
	return c.do(ctx, http.MethodPost, "/cart/sync", body, &payload)
}

// Checkout places an order for the authenticated user's current cart.
func (c *Client) Checkout(ctx context.Context) (*OrderConfirmation, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/checkout", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchProducts retrieves the product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/products", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
