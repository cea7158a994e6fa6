package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a 404 from the API and a missing id in the mock data.
var ErrNotFound = errors.New("not found")

// Kind classifies a data-access failure.
type Kind int

const (
	// KindClient means the request never left the process (bad input, encode failure).
	KindClient Kind = iota + 1
	// KindNetwork means no response was received.
	KindNetwork
	// KindServer means a response arrived with a non-2xx status or an unreadable body.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every remote access call.
type Error struct {
	Kind   Kind
	Op     string // e.g. "GET /orders"
	Status int    // HTTP status for KindServer, zero otherwise
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindServer && e.Status > 0:
		if e.Err != nil {
			return fmt.Sprintf("%s returned status %d: %v", e.Op, e.Status, e.Err)
		}
		return fmt.Sprintf("%s returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match a 404 response.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindServer && e.Status == http.StatusNotFound
}

// KindOf returns the classification of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsNetwork reports whether err means the API could not be reached.
func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}
