// Package assets loads model, material and texture files from asset
// directories and caches their contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
)

// ErrNotFound is returned when no source holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager reads files from a stack of sources.
// Sources are searched in reverse order (last added = highest priority).
type Manager struct {
	sources []fs.FS
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory to the manager.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds an arbitrary file system, such as an embed.FS.
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.mu.Unlock()
}

// Load reads a slash-separated path relative to the sources. Safe for
// concurrent use; texture decodes call it from worker goroutines.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid path %q", ErrNotFound, name)
	}

	// Check cache first
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Evict drops a cached file so the next Load reads it again.
func (m *Manager) Evict(name string) {
	m.cache.Delete(path.Clean(name))
}

// Close drops all sources and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes one item.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
