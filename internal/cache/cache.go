// Package cache provides thread-safe generic caching for stored values,
// rendered blog excerpts and generated stylesheets.
package cache

import (
	"sort"
	"strings"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteFunc removes the entries whose key matches del and returns how many
// were removed.
func (c *Cache[K, V]) DeleteFunc(del func(key K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.items {
		if del(k) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns a snapshot of the keys, ordered by less.
func (c *Cache[K, V]) Keys(less func(a, b K) bool) []K {
	c.mu.RLock()
	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	if less != nil {
		sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	}
	return keys
}

var renderedMarkdownCache = NewCache[string, []byte]()

func GetRenderedMarkdown(contentHash, syntaxTheme string) ([]byte, bool) {
	key := contentHash + ":" + syntaxTheme
	return renderedMarkdownCache.Get(key)
}

func SetRenderedMarkdown(contentHash, syntaxTheme string, html []byte) {
	key := contentHash + ":" + syntaxTheme
	renderedMarkdownCache.Set(key, html)
}

// RetainRenderedMarkdown drops every rendering, in any syntax theme, whose
// content hash is not in live.
func RetainRenderedMarkdown(live map[string]bool) int {
	return renderedMarkdownCache.DeleteFunc(func(key string) bool {
		contentHash, _, _ := strings.Cut(key, ":")
		return !live[contentHash]
	})
}

func RenderedMarkdownLen() int {
	return renderedMarkdownCache.Len()
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
