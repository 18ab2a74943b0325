// Package api defines the remote API client consumed by the offline
// core. The backend is treated as an opaque REST surface: the core
// only needs the four verbs, a fixed timeout, and a failure taxonomy
// that separates transport problems from session problems.
package api

import "context"

// Client is the narrow remote-API contract used by the sync coordinator
// (action replay, analytics upload) and the data accessor (fresh
// fetches). Implementations must honor ctx cancellation and return
// *NetworkError for transport/server failures.
type Client interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
	Put(ctx context.Context, path string, body any) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}
