// Package fetch provides the HTTP transport and text decoding shared by the source fetchers.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dbsmedya/nlplaces/internal/config"
)

// DefaultUserAgent is sent when no user agent is configured. Wikipedia rejects
// requests without one.
const DefaultUserAgent = "Mozilla/5.0"

// Fetcher retrieves the raw body behind a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// TransportError reports a failed request or a non-2xx response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client performs single GET requests. It never retries.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Client from HTTP settings. A zero timeout keeps the
// transport default.
func NewClient(cfg config.HTTPConfig) *Client {
	hc := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		hc.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{http: hc, userAgent: ua}
}

// Get performs a GET request and returns the full response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
