// ABOUTME: Key-value storage abstraction shared by every persistence backend.
// ABOUTME: Values are opaque bytes; callers store complete JSON documents per key.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("key not found")

// Store is a flat string-keyed byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Syncer is implemented by backends that replicate to a remote service.
type Syncer interface {
	Sync() error
	Reset() error
	ID() (string, error)
	IsReadOnly() bool
}

// AutoSyncer is implemented by backends that sync after every write. Bulk
// writers turn auto-sync off and call Sync once at the end.
type AutoSyncer interface {
	SetAutoSync(enabled bool)
	Sync() error
}
