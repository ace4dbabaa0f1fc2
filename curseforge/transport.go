package curseforge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// FetchOptions describes a single outgoing request. The query string is
// already encoded into the URL handed to the FetchFunc.
type FetchOptions struct {
	Method string
	Header http.Header
	Body   []byte
}

// FetchResponse is what a FetchFunc hands back to the client.
// The client reads and closes Body.
type FetchResponse struct {
	Status     int
	StatusText string
	Header     http.Header
	Body       io.ReadCloser
}

// FetchFunc performs one HTTP exchange. Any cancellation or timeout policy
// belongs to the implementation (usually via ctx).
type FetchFunc func(ctx context.Context, url string, opts *FetchOptions) (*FetchResponse, error)

// HTTPFetch adapts an *http.Client into a FetchFunc. A nil client means
// http.DefaultClient.
func HTTPFetch(hc *http.Client) FetchFunc {
	if hc == nil {
		hc = http.DefaultClient
	}
	return func(ctx context.Context, url string, opts *FetchOptions) (*FetchResponse, error) {
		method := opts.Method
		if method == "" {
			method = http.MethodGet
		}

		var body io.Reader
		if opts.Body != nil {
			body = bytes.NewReader(opts.Body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, vs := range opts.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		return &FetchResponse{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Header:     resp.Header,
			Body:       resp.Body,
		}, nil
	}
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
