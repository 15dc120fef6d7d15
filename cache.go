package huffman

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// Cache shares Engines between loads of the same canonical table.  Tables
// are keyed by the xxhash of their binary form and compared byte for byte
// on a hit, so a hash collision only costs a rebuild.
//
// A Cache is safe for concurrent use.
type Cache[T comparable] struct {
	m    SymbolMarshaler[T]
	conf *Config

	mu      sync.RWMutex
	entries map[uint64]cacheEntry[T]
}

type cacheEntry[T comparable] struct {
	raw    []byte
	engine *Engine[T]
}

// NewCache returns an empty Cache.  Every Engine it loads uses m and conf.
func NewCache[T comparable](m SymbolMarshaler[T], conf *Config) *Cache[T] {
	assert.Assertf(m != nil, "NewCache called with nil SymbolMarshaler")
	var c *Config
	if conf != nil {
		copied := *conf
		c = &copied
	}
	return &Cache[T]{
		m:       m,
		conf:    c,
		entries: make(map[uint64]cacheEntry[T]),
	}
}

// Load returns the Engine for t, building it on first use.
func (c *Cache[T]) Load(t CanonicalTable[T]) (*Engine[T], error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	raw := t.AppendBinary(nil, c.m)
	key := xxhash.Sum64(raw)

	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()
	if found && bytes.Equal(entry.raw, raw) {
		return entry.engine, nil
	}

	e, err := Load(t, c.m, c.conf)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, found := c.entries[key]; found {
		if bytes.Equal(existing.raw, raw) {
			return existing.engine, nil
		}
		return e, nil
	}
	c.entries[key] = cacheEntry[T]{raw: raw, engine: e}
	return e, nil
}

// Len returns the number of cached Engines.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
