// Package api is the typed gateway to the book-order backend. Every
// endpoint of the HTTP contract gets one method; failures are normalized
// into the HTTPError / NetworkError / ErrAuthRequired taxonomy so callers
// can pick user messaging without parsing response bodies themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/in1011558-byte/book-order-system/internal/util"
)

// TokenProvider supplies the current bearer token. An empty string means
// the session is anonymous. The session manager owns the token; the client
// only ever reads it through this hook.
type TokenProvider func() string

// Client calls the book-order backend over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	token        TokenProvider
	onAuthDenied func()
}

// NewClient constructs a backend client. A zero timeout selects the
// default of 10 seconds.
func NewClient(baseURL string, token TokenProvider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
	}
}

// SetAuthDeniedHandler registers a hook invoked whenever the backend
// rejects a request with 401 or 403. The session manager uses it to tear
// down stale authenticated state.
func (c *Client) SetAuthDeniedHandler(h func()) {
	c.onAuthDenied = h
}

// currentToken resolves the token for an authenticated endpoint, failing
// fast without a round trip when the session is anonymous.
func (c *Client) currentToken() (string, error) {
	token := strings.TrimSpace(c.token())
	if token == "" {
		return "", ErrAuthRequired
	}
	return token, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuthHeader(req, token)
	req.Header.Set("X-Request-ID", util.NewRequestID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

// doBlob fetches a binary export without parsing the payload.
func (c *Client) doBlob(ctx context.Context, path, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	addAuthHeader(req, token)
	req.Header.Set("X-Request-ID", util.NewRequestID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, c.errorFrom(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return data, nil
}

func (c *Client) errorFrom(resp *http.Response) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	msg := errResp.Error
	if msg == "" {
		msg = errResp.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	httpErr := &HTTPError{Status: resp.StatusCode, Message: msg}
	if httpErr.AuthDenied() && c.onAuthDenied != nil {
		c.onAuthDenied()
	}
	return httpErr
}

func addAuthHeader(req *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
