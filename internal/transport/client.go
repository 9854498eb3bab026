// Package transport is a thin pass-through over net/http.
//
// It knows nothing about the Olymp API: every call returns the response body
// and status code as-is and leaves their interpretation to the caller.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no custom Doer is supplied
const DefaultTimeout = 30 * time.Second

// Doer executes HTTP requests; *http.Client satisfies it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues HTTP requests against a base URL
type Client struct {
	baseURL    string
	httpClient Doer
	headers    http.Header
}

// Option configures a Client
type Option func(*Client)

// WithDoer replaces the underlying HTTP client
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithTimeout sets the timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithHeader adds a header to every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// NewClient creates a new transport client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL all paths are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an HTTP request and returns the raw body and status code
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (string, int, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	return string(respBody), resp.StatusCode, nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) (string, int, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a serialized body
func (c *Client) Post(ctx context.Context, path string, body []byte) (string, int, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a serialized body
func (c *Client) Put(ctx context.Context, path string, body []byte) (string, int, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (string, int, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
