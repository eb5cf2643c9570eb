// Package repository implements the local store: a flat key/value space where
// each collection is kept as one serialized value under its storage key.
package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("key not found")

type Repository interface {
	// GetItem returns the value stored under key, or ErrNotFound.
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}
