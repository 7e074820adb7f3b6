// Package store provides the local key-value persistence used to mirror the
// cart and the session token across runs. The backend is opaque to the rest
// of the client; both file and redis implementations satisfy KV.
package store

import "context"

// Well-known keys. The cart entry holds a JSON array of cart items, the
// token entry holds the raw bearer token.
const (
	KeyCart         = "book_cart"
	KeySessionToken = "session_token"
)

// KV is a minimal key-value store. Get reports a miss with found=false
// rather than an error so callers can distinguish absence from failure.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
