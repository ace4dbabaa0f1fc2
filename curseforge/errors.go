package curseforge

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no API key was supplied.
	ErrMissingAPIKey = errors.New("curseforge: an API key is required")

	// ErrNoTransport is returned by NewClient when no usable FetchFunc could be resolved.
	ErrNoTransport = errors.New("curseforge: no fetch implementation is available")

	// ErrNoClient is returned by follow-up calls on objects that were not produced by a Client.
	ErrNoClient = errors.New("curseforge: object is not bound to a client")
)

// ResponseError is returned whenever the API answers with anything but 200.
type ResponseError struct {
	Path       string // request path, without the host
	Status     int
	StatusText string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API request to %s failed: %d (%s)", e.Path, e.Status, e.StatusText)
}

// DecodeError reports a 200 response whose payload did not fit the expected type.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
