package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks 401/403 responses. Session handling lives in
// the app's auth layer; the offline core only needs to recognize these
// so it does not burn outbox retries on a dead session.
var ErrUnauthorized = errors.New("unauthorized")

// NetworkError is a transport or server failure on a remote call. In
// the sync coordinator it increments an action's retry count; in the
// data accessor it triggers cache fallback.
type NetworkError struct {
	Op     string // method + path, e.g. "POST /v1/betslip"
	Status int    // HTTP status, 0 when the request never completed
	Err    error  // underlying cause, may be nil for status-only errors
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
