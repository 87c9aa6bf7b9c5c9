package brubeck

import (
	"context"
	"errors"
	"fmt"
	"net"

	"brubeckscan/internal/domain"
)

// ErrorKind classifies why an endpoint request failed.
type ErrorKind string

const (
	ErrorTimeout            ErrorKind = "timeout"
	ErrorHTTPStatus         ErrorKind = "http_status"
	ErrorNetworkUnreachable ErrorKind = "network_unreachable"
	ErrorBadPayload         ErrorKind = "bad_payload"
)

// FetchError describes a failed request to one monitoring API endpoint.
type FetchError struct {
	Category   domain.Category
	Kind       ErrorKind
	StatusCode int // set when Kind is ErrorHTTPStatus
	Cause      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == ErrorHTTPStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Category, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Kind, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Category, e.Kind)
	}
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Kind returns the classification of err when it is a FetchError,
// or the empty string otherwise.
func Kind(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// classify maps a transport error to a FetchError. Deadline and net timeouts
// become ErrorTimeout; everything else counts as an unreachable endpoint.
func classify(category domain.Category, err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{Category: category, Kind: ErrorTimeout, Cause: err}
	}
	return &FetchError{Category: category, Kind: ErrorNetworkUnreachable, Cause: err}
}
