package repository

import (
	"context"

	"github.com/debemdeboas/the-gallery/internal/cache"
)

type MemoryRepository struct { // implements Repository
	items *cache.Cache[string, []byte]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: cache.NewCache[string, []byte](),
	}
}

func (r *MemoryRepository) GetItem(_ context.Context, key string) ([]byte, error) {
	value, ok := r.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *MemoryRepository) SetItem(_ context.Context, key string, value []byte) error {
	r.items.Set(key, append([]byte(nil), value...))
	return nil
}

func (r *MemoryRepository) RemoveItem(_ context.Context, key string) error {
	r.items.Delete(key)
	return nil
}

func (r *MemoryRepository) Keys(_ context.Context) ([]string, error) {
	return r.items.Keys(func(a, b string) bool { return a < b }), nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
