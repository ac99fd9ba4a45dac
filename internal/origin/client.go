// Package origin provides the HTTP client for the origin query service,
// used by the gateway to forward tool calls, streams, and proxied
// requests.
package origin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Known origin endpoints.
const (
	PathPrograms = "/programs"
	PathRank     = "/rank"
)

// Client is an HTTP client for the origin query service. Tool calls use
// a bounded timeout; streams use a separate client with no overall
// deadline so long-lived connections are not cut off, bounded instead by
// the caller's context and a response-header timeout.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
}

// New creates a Client. baseURL is the origin root, e.g.
// "http://localhost:8000". timeout bounds each non-streaming round trip.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		stream: &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: timeout},
		},
	}
}

// BaseURL returns the origin root URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// CallTool posts the raw tool arguments to the given origin path and
// returns the origin's JSON body. Non-2xx statuses and unparseable
// bodies are errors.
func (c *Client) CallTool(ctx context.Context, path string, args json.RawMessage) (json.RawMessage, error) {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(args))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("origin %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("origin %s: read response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("origin %s: %d %s", path, resp.StatusCode, bytes.TrimSpace(body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("origin %s: malformed JSON response", path)
	}
	return body, nil
}

// OpenStream opens a GET event-stream connection to the given origin
// path. The caller owns the response body and must close it. Cancelling
// ctx tears the connection down.
func (c *Client) OpenStream(ctx context.Context, path, rawQuery string) (*http.Response, error) {
	url := c.baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("origin stream %s: %w", path, err)
	}
	return resp, nil
}

// Do forwards an already-built request to the origin, used by the
// generic reverse-proxy path.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}
