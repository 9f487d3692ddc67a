// Package api is the thin HTTP client the console talks to the CRM
// backend with. Each method issues exactly one request and returns the
// parsed body or the failure as-is; retries are the caller's business.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
)

// Error is a backend-reported failure, carrying the HTTP status and
// the detail field of the error envelope.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Client calls the CRM backend
type Client struct {
	baseURL  string
	http     *http.Client
	language string
}

// Option configures the client
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracing instruments outgoing requests with OpenTelemetry
func WithTracing() Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = otelhttp.NewTransport(base)
	}
}

// WithLanguage sets the Accept-Language sent on every request
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one request. A userID > 0 is attached as the identity header.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, userID uint, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(cnst.XUserID, strconv.FormatUint(uint64(userID), 10))
	}
	if c.language != "" {
		req.Header.Set(cnst.AcceptLanguage, c.language)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		detail := gjson.GetBytes(data, "detail").String()
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Login authenticates and returns the user, tenant, and token
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the given token server-side
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		detail := gjson.GetBytes(data, "detail").String()
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}
	return nil
}

// Me verifies the token server-side and returns the account it was
// issued for. Revoked tokens come back as a 401 Error.
func (c *Client) Me(ctx context.Context, token string) (*dto.LoginResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.language != "" {
		req.Header.Set(cnst.AcceptLanguage, c.language)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		detail := gjson.GetBytes(data, "detail").String()
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, Detail: detail}
	}

	var out dto.LoginResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &out, nil
}

// ListTenants returns every tenant known to the backend
func (c *Client) ListTenants(ctx context.Context) ([]dto.Tenant, error) {
	var out []dto.Tenant
	if err := c.do(ctx, http.MethodGet, "/tenants", nil, nil, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTenant provisions a company
func (c *Client) CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.Tenant, error) {
	var out dto.Tenant
	if err := c.do(ctx, http.MethodPost, "/tenants", nil, req, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all users. The caller's id authorizes the request.
func (c *Client) ListUsers(ctx context.Context, userID uint) ([]dto.User, error) {
	var out []dto.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, userID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates an account. The caller's id authorizes the request.
func (c *Client) CreateUser(ctx context.Context, userID uint, req dto.CreateUserRequest) (*dto.User, error) {
	var out dto.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomers returns a tenant's customers, optionally narrowed by a
// server-side search.
func (c *Client) ListCustomers(ctx context.Context, tenantCode, search string) ([]dto.Customer, error) {
	q := url.Values{"tenant_code": {tenantCode}}
	if search != "" {
		q.Set("search", search)
	}
	var out []dto.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", q, nil, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCustomer adds a customer to the tenant named in the request
func (c *Client) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.Customer, error) {
	var out dto.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", nil, req, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContact fetches one contact scoped to a tenant
func (c *Client) GetContact(ctx context.Context, tenantCode string, id uint) (*dto.Contact, error) {
	q := url.Values{"tenant_code": {tenantCode}}
	var out dto.Contact
	path := "/contacts/" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(ctx, http.MethodGet, path, q, nil, 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
