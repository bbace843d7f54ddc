// Package iconcache holds the resolved icon assignment of every tracked path.
//
// The cache is the single source of truth consulted before a custom rule may
// assign an icon. It is an explicitly owned object: the host creates one at
// startup and hands it to every consumer, so tests get a fresh instance each.
package iconcache

import (
	"sort"
	"sync"

	"github.com/arthur-debert/iconrules/pkg/types"
)

// Cache maps vault paths to icon assignments. Invalidation is synchronous.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]types.Assignment
}

// New creates an empty cache
func New() *Cache {
	return &Cache{entries: make(map[string]types.Assignment)}
}

// Get returns the assignment for path
func (c *Cache) Get(path string) (types.Assignment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.entries[path]
	return a, ok
}

// Set stores an assignment for path, replacing any previous one
func (c *Cache) Set(path string, a types.Assignment) {
	a.Path = path
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = a
}

// Invalidate removes the assignment for path. Absent paths are ignored.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Rename moves the assignment of oldPath to newPath
func (c *Cache) Rename(oldPath, newPath string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[oldPath]
	if !ok {
		return false
	}
	delete(c.entries, oldPath)
	a.Path = newPath
	c.entries[newPath] = a
	return true
}

// Len returns the number of assignments
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Paths returns every tracked path in sorted order
func (c *Cache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clear drops every assignment
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]types.Assignment)
}
