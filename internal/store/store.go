// Package store provides durable key-value persistence for the ledger
// collections. Each value is an opaque JSON document; seeding and
// serialization policy belong to the caller so every backend stays a
// plain namespaced KV.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Read when no value exists under the key
var ErrKeyNotFound = errors.New("store: key not found")

// Store defines the persistence operations the ledger engine relies on
type Store interface {
	// Read returns the value stored under key, or ErrKeyNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the value stored under key
	Write(ctx context.Context, key string, value []byte) error

	// Exists reports whether a value is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes every key in the store's namespace, not just the
	// ledger collections. Callers must treat it as a store-wide wipe.
	Clear(ctx context.Context) error

	// Close releases any resources held by the backend
	Close(ctx context.Context) error
}
