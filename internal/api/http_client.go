// Package api — default net/http implementation of Client.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// HTTPClient is the production Client: JSON over HTTP against a single
// base URL with one fixed request timeout for every call, replays
// included. No special longer timeout exists for retries; a timed-out
// call is just a failed call.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger

	// AuthToken, when set, is sent as a Bearer credential.
	AuthToken string
}

// NewHTTPClient builds a client against baseURL with the given timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log.With().Str("component", "api").Logger(),
	}
}

// Get implements Client.
func (c *HTTPClient) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post implements Client.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put implements Client.
func (c *HTTPClient) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete implements Client.
func (c *HTTPClient) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Debug().Str("op", op).Err(err).Msg("request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: ErrUnauthorized}
	case resp.StatusCode >= 400:
		c.Log.Debug().Str("op", op).Int("status", resp.StatusCode).Msg("request rejected")
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}
	return data, nil
}
