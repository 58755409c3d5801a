package service

import "sync"

// cache is a slice guarded for concurrent readers. Writers replace the whole
// slice; readers always get a copy.
type cache[T any] struct {
	mu    sync.RWMutex
	items []T
}

func (c *cache[T]) replace(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)
	c.mu.Lock()
	c.items = cp
	c.mu.Unlock()
}

func (c *cache[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]T, len(c.items))
	copy(cp, c.items)
	return cp
}

func (c *cache[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *cache[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// modify runs fn under the write lock and stores its result
func (c *cache[T]) modify(fn func([]T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = fn(c.items)
}

func (c *cache[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *cache[T]) clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
