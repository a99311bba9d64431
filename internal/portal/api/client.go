package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the current credential. An empty string means
// nobody is logged in and requests go out bare.
type TokenSource interface {
	Token() string
}

// The authentication endpoint group never carries a credential and its
// 401s mean "bad credentials", not "session expired". Logout is not in
// the group: it authenticates like any other call.
var authGroup = []string{"/auth/login", "/auth/register", "/auth/refresh"}

func isAuthEndpoint(path string) bool {
	for _, p := range authGroup {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// authTransport attaches the bearer header before any other
// request-shaping step, so a retried request re-carries it.
type authTransport struct {
	src  TokenSource
	next http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.src.Token(); tok != "" && !isAuthEndpoint(req.URL.Path) {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.next.RoundTrip(req)
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized func()
}

func New(baseURL string, src TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &authTransport{
				src: src,
				next: &http.Transport{
					MaxIdleConns:        100,
					MaxIdleConnsPerHost: 10,
					IdleConnTimeout:     90 * time.Second,
				},
			},
		},
	}
}

// SetOnUnauthorized registers the hook fired when an authenticated call
// comes back 401/403: the credential is no longer valid and the caller
// is expected to drop the session.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, path); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, path); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	unauthorized := resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden
	if unauthorized && !isAuthEndpoint(path) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return statusError(resp.StatusCode, serverMessage(resp.Body))
}
