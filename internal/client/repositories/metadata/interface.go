// Package metadata is a small key/value table in the local database. It holds
// install-scoped values such as the secret used to seal stored credentials.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Values are written whole; there is
// no partial update.
type Repository interface {
	// Get returns nil, nil when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// GetOrCreate returns the value under key, storing the result of create
	// first if there is none. Run it inside a transaction when two writers
	// may race.
	GetOrCreate(ctx context.Context, key string, create func() ([]byte, error)) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
