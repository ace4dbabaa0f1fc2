// Package curseforge is a typed client for the CurseForge Core API.
//
// Every endpoint is a method on Client. Responses are decoded, date-shaped
// strings are upgraded to time.Time, and the payload is materialized into the
// domain types of this package. Games, mods and files keep a handle to the
// Client that produced them so follow-up calls need no extra identifiers.
package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	curseforgeAPIURL = "https://api.curseforge.com"
	apiKeyHeader     = "x-api-key"
)

// Client handles communication with the CurseForge Core API.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	fetch   FetchFunc
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithFetch replaces the transport used for every request.
func WithFetch(f FetchFunc) Option {
	return func(c *Client) { c.fetch = f }
}

// WithHTTPClient uses hc as the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.fetch = HTTPFetch(hc) }
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLogger sets the logger used for debug request traces.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a CurseForge client authenticated with apiKey.
// It performs no network I/O.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL: curseforgeAPIURL,
		apiKey:  apiKey,
		fetch:   HTTPFetch(http.DefaultClient),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.fetch == nil {
		return nil, ErrNoTransport
	}
	return c, nil
}

// request is the per-call input to fetchURL.
type request struct {
	method string
	query  query
	body   any
}

// fetchURL sends a request to path (no host) and returns the decoded,
// date-upgraded JSON body. Anything but a 200 is a *ResponseError.
func (c *Client) fetchURL(ctx context.Context, path string, req request) (any, error) {
	opts := &FetchOptions{
		Method: req.method,
		Header: http.Header{},
	}
	opts.Header.Set(apiKeyHeader, c.apiKey)
	opts.Header.Set("Accept", "application/json")

	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		opts.Body = payload
		if opts.Method == "" {
			opts.Method = http.MethodPost
		}
		opts.Header.Set("Content-Type", "application/json")
	}
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	fullURL := c.baseURL + path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.encode()
	}

	start := time.Now()
	resp, err := c.fetch(ctx, fullURL, opts)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil {
		resp.Body = http.NoBody
	}
	defer resp.Body.Close()

	c.log.Debug("curseforge request",
		zap.String("method", opts.Method),
		zap.String("path", path),
		zap.Int("status", resp.Status),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.Status != http.StatusOK {
		return nil, &ResponseError{
			Path:       path,
			Status:     resp.Status,
			StatusText: resp.StatusText,
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode json response: %w", err)
	}
	return upgradeDates(payload), nil
}

// fetchData is fetchURL followed by unwrapping the {"data": ...} envelope.
func (c *Client) fetchData(ctx context.Context, path string, req request) (any, error) {
	payload, err := c.fetchURL(ctx, path, req)
	if err != nil {
		return nil, err
	}
	return field(payload, "data")
}

// field returns obj[key] for a JSON object.
func field(obj any, key string) (any, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, &DecodeError{Type: "envelope", Err: fmt.Errorf("expected object, got %T", obj)}
	}
	return m[key], nil
}
