// Package kvstore provides durable key-value storage used as the local
// persistence fallback when the resume API is unreachable. Implementations
// are injected so tests can substitute an in-memory double.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a durable key-value capability keyed by logical collection name.
// Get returns ErrNotFound when the key has never been set.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
