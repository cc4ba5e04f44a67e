package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

const defaultTimeout = 10 * time.Second

// HTTPBackend talks to the commodity API over HTTP. The token cookie is
// kept in the client's cookie jar and never read by this package.
type HTTPBackend struct {
	baseURL *url.URL
	client  *http.Client
}

// NewHTTPBackend builds a backend for baseURL. client may be nil; a jar is
// attached when the client has none. Redirects are never followed.
func NewHTTPBackend(baseURL string, client *http.Client) (*HTTPBackend, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	hc := &http.Client{Timeout: defaultTimeout}
	if client != nil {
		copied := *client
		hc = &copied
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		hc.Jar = jar
	}
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &HTTPBackend{baseURL: u, client: hc}, nil
}

type loginResponse struct {
	Success bool            `json:"success"`
	User    domain.Identity `json:"user"`
}

type meResponse struct {
	User domain.Identity `json:"user"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login posts credentials to /api/auth.
func (b *HTTPBackend) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return domain.Identity{}, err
	}
	var out loginResponse
	if err := b.do(ctx, http.MethodPost, "/api/auth", body, &out); err != nil {
		return domain.Identity{}, err
	}
	return out.User, nil
}

// CheckSession calls GET /api/auth.
func (b *HTTPBackend) CheckSession(ctx context.Context) (bool, error) {
	err := b.do(ctx, http.MethodGet, "/api/auth", nil, nil)
	var apiErr *APIError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized:
		return false, nil
	default:
		return false, err
	}
}

// WhoAmI calls GET /api/auth/me.
func (b *HTTPBackend) WhoAmI(ctx context.Context) (domain.Identity, error) {
	var out meResponse
	err := b.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return domain.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.Identity{}, err
	}
	if !out.User.Role.Valid() {
		return domain.Identity{}, ErrUnauthenticated
	}
	return out.User, nil
}

// Logout calls POST /api/auth/logout.
func (b *HTTPBackend) Logout(ctx context.Context) error {
	return b.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error.Code != "" {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
