package texture

import (
	"fmt"
	"strings"
	"sync"
)

// Cache is a concurrency-safe texture cache. Procedural texture names
// ("xor", "checker", "rings") resolve without touching the index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
	size  int
}

type cacheEntry struct {
	tex *Texture
	err error
}

// NewCache creates a new texture cache backed by the given index.
// Procedural textures are generated with edge size.
func NewCache(index *Index, size int) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
		size:  size,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// not decodable.
func (c *Cache) Resolve(name string) *Texture {
	tex, _ := c.Load(name)
	return tex
}

// Load is Resolve with the load error reported. Failures are cached too.
func (c *Cache) Load(name string) (*Texture, error) {
	key := strings.ToLower(name)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry.tex, entry.err
	}
	c.mu.RUnlock()

	// Slow path: generate or load from disk
	var tex *Texture
	var err error
	if tex = ByName(key, c.size); tex == nil {
		path, ok := c.index.ResolvePath(name)
		if ok {
			tex, err = Load(path)
		} else {
			err = fmt.Errorf("texture: %q not found", name)
		}
	}

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[key]; exists {
		c.mu.Unlock()
		return entry.tex, entry.err
	}
	c.items[key] = &cacheEntry{tex: tex, err: err}
	c.mu.Unlock()

	return tex, err
}

// Names lists the procedural textures followed by the indexed files.
func (c *Cache) Names() []string {
	return append([]string{"xor", "checker", "rings"}, c.index.Names()...)
}
