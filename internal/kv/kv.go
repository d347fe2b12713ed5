// Package kv defines the durable key-value storage the trash set is kept in.
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed Storage
var ErrClosed = errors.New("storage is closed")

// Storage is a string key-value store.
type Storage interface {
	// Get returns the value stored at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources
	Close() error
}
