package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

type DiskvRepository struct { // implements Repository
	d        *diskv.Diskv
	basePath string
}

func NewDiskvRepository(basePath string) (*DiskvRepository, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("error creating storage directory %s: %w", basePath, err)
	}

	repoLogger.Info().Str("base_path", basePath).Msg("Using diskv storage")

	return &DiskvRepository{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (r *DiskvRepository) GetItem(_ context.Context, key string) ([]byte, error) {
	value, err := r.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}
	return value, nil
}

func (r *DiskvRepository) SetItem(_ context.Context, key string, value []byte) error {
	// WriteStream with sync so a crash after SetItem returns keeps the value.
	if err := r.d.WriteStream(key, bytes.NewReader(value), true); err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	return nil
}

func (r *DiskvRepository) RemoveItem(_ context.Context, key string) error {
	if !r.d.Has(key) {
		return nil
	}
	if err := r.d.Erase(key); err != nil {
		return fmt.Errorf("error erasing %s: %w", key, err)
	}
	return nil
}

func (r *DiskvRepository) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	for key := range r.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, ctx.Err()
}

func (r *DiskvRepository) Close() error {
	return nil
}
