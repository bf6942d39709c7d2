// Package memberapi is the HTTP client for the member management API.
// Every call takes the bearer token explicitly so the caller always reads
// the freshest stored token instead of caching one at construction time.
package memberapi

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

	"github.com/rs/zerolog"

	"github.com/memberhub/member-console/internal/console/session"
)

// Sentinel errors mapped from API status codes. Callers branch on these
// with errors.Is instead of inspecting status codes themselves. A 401
// splits on whether the call carried a token: with one the session has
// expired, without one the credentials were rejected.
var (
	ErrUnauthorized   = errors.New("memberapi: invalid credentials")
	ErrSessionExpired = errors.New("memberapi: session expired")
	ErrForbidden      = errors.New("memberapi: forbidden")
	ErrNotFound       = errors.New("memberapi: member not found")
	ErrConflict       = errors.New("memberapi: member already exists")
)

// Client talks to the member API over HTTP with an explicit timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// errorEnvelope matches the API's error body: {"error": "..."}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do sends a request and decodes the JSON response into out (when out is
// non-nil). A non-empty token is attached as a bearer credential. Tokens
// that already look expired are logged but still sent: the API is the
// authority on expiry, and its 401 comes back as ErrSessionExpired either
// way.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out interface{}) error {
	if token != "" {
		if sess := session.Derive(token, time.Now()); !sess.Authenticated {
			c.logger.Warn().Str("path", path).Msg("sending request with stale token")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("member api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, token != "")
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, authed bool) error {
	var envelope errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if authed {
			return ErrSessionExpired
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	if envelope.Error != "" {
		return fmt.Errorf("member api: %s (status %d)", envelope.Error, resp.StatusCode)
	}
	return fmt.Errorf("member api: unexpected status %d", resp.StatusCode)
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, token, payload, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path, token string, payload, out interface{}) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, path, token, buf, "application/json", out)
}
