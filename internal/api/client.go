package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pmconsole/internal/busy"
)

// RequestIDHeader carries a per-call id for correlating server logs.
const RequestIDHeader = "X-Request-ID"

// Client calls the project-management JSON API.
type Client struct {
	baseURL string
	client  *http.Client
	busy    busy.Indicator
	logger  *slog.Logger
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client = &http.Client{Timeout: timeout}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithBusy sets the busy indicator held for the duration of each call.
func WithBusy(indicator busy.Indicator) Option {
	return func(c *Client) {
		if indicator != nil {
			c.busy = indicator
		}
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		busy:    busy.New(busy.ModeCounted),
		logger:  slog.New(slog.DiscardHandler),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Busy returns the indicator shared by this client's calls.
func (c *Client) Busy() busy.Indicator {
	return c.busy
}

// CallOption adjusts a single request.
type CallOption func(*http.Request)

// WithHeader sets a request header, overriding the defaults.
func WithHeader(key, value string) CallOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// Call issues a JSON request and decodes a successful body into out.
// A nil body sends no payload; a nil out discards the response.
// Non-2xx responses and transport failures return a *RequestError.
func (c *Client) Call(ctx context.Context, method, path string, body any, out any, opts ...CallOption) (err error) {
	token := c.busy.Acquire()
	defer token.Release()

	requestID := c.newID()
	defer func() {
		if err != nil {
			c.logger.Warn("API call failed",
				"method", method,
				"path", path,
				"request_id", requestID,
				"error", err.Error())
		}
	}()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	if !isSuccess(resp.StatusCode) {
		return decodeHTTPError(method, path, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
