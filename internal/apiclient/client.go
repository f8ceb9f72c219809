// Package apiclient is the typed HTTP collaborator for the storefront
// client: one method per backend endpoint, cookie-based sessions and
// the single-retry 401 interceptor.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rubenhtun/luxora-store/internal/product"
	"github.com/rubenhtun/luxora-store/internal/user"
)

// APIError carries a server-reported failure: the HTTP status and the
// message field from the response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*options)

type options struct {
	base       http.RoundTripper
	onAuthFail func()
}

// WithTransport overrides the underlying RoundTripper, mainly for
// tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithAuthFailureHook installs the redirect hook fired when a 401
// cannot be recovered by a silent refresh.
func WithAuthFailureHook(fn func()) Option {
	return func(o *options) { o.onAuthFail = fn }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	o := options{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	// The refresh call bypasses the interceptor but shares the cookie
	// jar, so the rotated access token is visible to replays.
	plain := &http.Client{Jar: jar, Transport: o.base}
	refreshURL := baseURL + "/api/auth/refresh"

	rt := &retryTransport{
		base:         o.base,
		jar:          jar,
		exemptPrefix: parsed.Path + "/api/auth/",
		onAuthFail:   o.onAuthFail,
		refresh: func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, nil)
			if err != nil {
				return err
			}
			resp, err := plain.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)
			if resp.StatusCode != http.StatusOK {
				return &APIError{Status: resp.StatusCode, Message: "refresh failed"}
			}
			return nil
		},
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Transport: rt},
	}, nil
}

// FetchProducts implements catalog.Fetcher.
func (c *Client) FetchProducts(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userEnvelope struct {
	User user.Profile `json:"user"`
}

// Login implements session.API. The returned error carries the server
// message on bad credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*user.Profile, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*user.Profile, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", credentials{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (*user.Profile, error) {
	var profile user.Profile
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdatePhone(ctx context.Context, phone string) (*user.Profile, error) {
	payload := struct {
		Phone string `json:"phone"`
	}{Phone: phone}

	var out struct {
		User    user.Profile `json:"user"`
		Message string       `json:"message"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/users/update-phone", payload, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
