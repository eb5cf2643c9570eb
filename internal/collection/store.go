// Package collection keeps the portfolio collections (images, projects and
// posts) in memory, mirrors every change to the local store, and tracks the
// editing state of each collection.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-gallery/internal/repository"
)

var collectionLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	collectionLogger = l
}

// Store persists one collection as a JSON array under a single key.
type Store[T any] struct {
	repo repository.Repository
	key  string
}

func NewStore[T any](repo repository.Repository, key string) *Store[T] {
	return &Store[T]{repo: repo, key: key}
}

func (s *Store[T]) Key() string {
	return s.key
}

// Load returns the stored collection. A missing key is seeded and written
// back; a value that does not decode falls back to the seed and is left
// untouched in storage.
func (s *Store[T]) Load(ctx context.Context, seed []T) ([]T, error) {
	data, err := s.repo.GetItem(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		collectionLogger.Info().Str("key", s.key).Int("items", len(seed)).Msg("Seeding collection")
		encoded, err := json.Marshal(seed)
		if err != nil {
			return nil, fmt.Errorf("failed to encode seed for %s: %w", s.key, err)
		}
		if err := s.repo.SetItem(ctx, s.key, encoded); err != nil {
			return nil, fmt.Errorf("failed to write seed for %s: %w", s.key, err)
		}
		return slices.Clone(seed), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		collectionLogger.Warn().Err(err).Str("key", s.key).Msg("Stored collection is malformed, using seed")
		return slices.Clone(seed), nil
	}
	if items == nil {
		items = []T{}
	}

	collectionLogger.Debug().Str("key", s.key).Int("items", len(items)).Msg("Loaded collection")
	return items, nil
}

// Persist writes items under the key. An empty collection is never written,
// so storage keeps the last non-empty snapshot; written reports whether a
// write happened.
func (s *Store[T]) Persist(ctx context.Context, items []T) (written bool, err error) {
	if len(items) == 0 {
		collectionLogger.Debug().Str("key", s.key).Msg("Skipping write of empty collection")
		return false, nil
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", s.key, err)
	}
	if err := s.repo.SetItem(ctx, s.key, encoded); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", s.key, err)
	}

	return true, nil
}
