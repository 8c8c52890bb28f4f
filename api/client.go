// File: api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"sportsfest-admin/logger"
)

// Header carrying the secondary admin password on gated writes.
const adminPasswordHeader = "x-admin-password"

// Client talks to the site API. All state mutations on the site go through
// POSTs that replace an entire collection; the client itself is stateless
// apart from the injected token store.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// NewClient builds a Client for the given base URL. The token store is
// injected so each admin session carries its own credential rather than a
// process-wide global.
func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// ---------------- request plumbing ----------------

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and maps the response onto the error taxonomy.
// gated marks requests carrying the secondary admin password: for those a
// 401/403 means "wrong password" and must not clear the bearer token.
func (c *Client) do(req *http.Request, gated bool, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if gated {
			logger.Warnf("api: admin password rejected on %s (status %d)", req.URL.Path, resp.StatusCode)
			return &PasswordError{Status: resp.StatusCode}
		}
		logger.Warnf("api: auth failure on %s (status %d), clearing token", req.URL.Path, resp.StatusCode)
		c.tokens.ClearToken()
		return &AuthError{Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
		}
	}
	return nil
}

// serverMessage pulls a {"message": ...} out of an error body when present.
func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// ---------------- operations ----------------

// Get fetches path and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, false, out)
}

// Post sends body as JSON to path and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	req, err := c.jsonRequest(ctx, path, body)
	if err != nil {
		return err
	}
	return c.do(req, false, out)
}

// PostGated is Post with the secondary admin password attached. A 401/403
// response is reported as *PasswordError and leaves the bearer token alone.
func (c *Client) PostGated(ctx context.Context, path, password string, body, out interface{}) error {
	req, err := c.jsonRequest(ctx, path, body)
	if err != nil {
		return err
	}
	req.Header.Set(adminPasswordHeader, password)
	return c.do(req, true, out)
}

func (c *Client) jsonRequest(ctx context.Context, path string, body interface{}) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request for %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Upload sends file as multipart form data under field, decoding the JSON
// response into out. The multipart boundary supplies the content type; no
// JSON header is set.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading upload %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, false, out)
}

// ---------------- auth operations ----------------

// LoginResponse is the site API's answer to a login attempt.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges admin credentials for a bearer token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.Post(ctx, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Success && resp.Token != "" {
		c.tokens.SetToken(resp.Token)
	}
	return &resp, nil
}

// Logout invalidates the token server-side on a best-effort basis. Network
// failure is logged and swallowed; the local token is always cleared.
func (c *Client) Logout(ctx context.Context) {
	defer c.tokens.ClearToken()

	req, err := c.jsonRequest(ctx, "/api/logout", map[string]string{})
	if err != nil {
		logger.Errorf("api: building logout request: %v", err)
		return
	}
	if err := c.do(req, false, nil); err != nil {
		logger.Errorf("api: logout call failed (token cleared locally anyway): %v", err)
	}
}
