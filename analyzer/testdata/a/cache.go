package a

import "sync"

type Cache struct {
	mu      sync.Mutex
	entries map[string]int
	hits    int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]int)}
}

func (c *Cache) Get(k string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hits++

	return c.entries[k]
}

func (c *Cache) Put(k string, v int) {
	c.mu.Lock()
	c.entries[k] = v
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *Cache) Delete(k string) {
	c.mu.Lock()
	c.mu.Unlock()

	delete(c.entries, k) // want "'Cache.entries' accessed without holding 'Cache.mu'"
}

func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits
}

func (c *Cache) Reset() {
	c.mu.Lock()
	c.hits = 0
	c.mu.Unlock()
}

func (c *Cache) Peek() int {
	return c.hits //nolint:lockstat
}
