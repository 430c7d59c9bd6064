// Package pkgcache memoizes package-origin lookups for the duration of one
// sync pass.
package pkgcache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// DefaultSize bounds the number of distinct package roots kept per pass.
const DefaultSize = 4096

type entry struct {
	info  projgen.PackageInfo
	found bool
}

// Cache maps a lowercased package root to its lookup result, including
// negative results. It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, entry]
	lookup  func(root string) (projgen.PackageInfo, bool)
}

// New creates a cache that resolves misses through lookup.
func New(lookup func(root string) (projgen.PackageInfo, bool)) (*Cache, error) {
	return NewWithSize(lookup, DefaultSize)
}

// NewWithSize is New with an explicit capacity.
func NewWithSize(lookup func(root string) (projgen.PackageInfo, bool), size int) (*Cache, error) {
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, lookup: lookup}, nil
}

// Get returns the package for root, consulting lookup at most once per key.
func (c *Cache) Get(root string) (projgen.PackageInfo, bool) {
	key := strings.ToLower(root)
	if e, ok := c.entries.Get(key); ok {
		return e.info, e.found
	}
	info, found := c.lookup(root)
	c.entries.Add(key, entry{info: info, found: found})
	return info, found
}

// Len reports the number of cached roots.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached lookup.
func (c *Cache) Purge() {
	c.entries.Purge()
}
