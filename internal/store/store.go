// Package store provides namespaced blob storage for assistant state and its
// SQLite, Redis and in-memory implementations.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a namespace holds no item.
var ErrNotFound = errors.New("item not found")

// Item is a single namespaced blob.
type Item struct {
	NS        string `json:"ns"`
	Blob      string `json:"blob"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Store defines the item storage interface. Every write replaces the whole
// blob for its namespace; the last write wins.
type Store interface {
	// GetItem returns the blob stored under ns, or ErrNotFound.
	GetItem(ctx context.Context, ns string) (string, error)

	// SetItem stores blob under ns, replacing any previous value.
	SetItem(ctx context.Context, ns, blob string) error

	// RemoveItem deletes the blob under ns. Removing a missing item is not an error.
	RemoveItem(ctx context.Context, ns string) error

	// Items lists all stored items ordered by namespace.
	Items(ctx context.Context) ([]Item, error)

	// Close closes the store.
	Close() error
}
