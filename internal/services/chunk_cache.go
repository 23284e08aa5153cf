package services

import (
	"sync"

	"dconn.dev/overworld/internal/generation"
)

// CacheStats counts cache traffic
type CacheStats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// ChunkCache is a bounded chunk store. When full, inserting evicts the
// oldest inserted chunk; reads do not refresh an entry's age.
type ChunkCache struct {
	mu      sync.RWMutex
	chunks  map[generation.ChunkCoord]*generation.Chunk
	order   []generation.ChunkCoord // insertion order, oldest first
	maxSize int

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

// NewChunkCache creates a cache holding at most maxSize chunks (minimum 1)
func NewChunkCache(maxSize int) *ChunkCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &ChunkCache{
		chunks:  make(map[generation.ChunkCoord]*generation.Chunk, maxSize),
		order:   make([]generation.ChunkCoord, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns a cached chunk
func (c *ChunkCache) Get(key generation.ChunkCoord) (*generation.Chunk, bool) {
	c.mu.RLock()
	chunk, ok := c.chunks[key]
	c.mu.RUnlock()

	c.statsMu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.statsMu.Unlock()

	return chunk, ok
}

// Peek looks a chunk up without counting a hit or miss
func (c *ChunkCache) Peek(key generation.ChunkCoord) (*generation.Chunk, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chunk, ok := c.chunks[key]
	return chunk, ok
}

// Put inserts a chunk and returns the chunk now resident for key. If key is
// already cached the existing chunk is kept and returned, so two publishers
// of the same key always end up sharing one chunk.
func (c *ChunkCache) Put(key generation.ChunkCoord, chunk *generation.Chunk) *generation.Chunk {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.chunks[key]; ok {
		return existing
	}

	if len(c.chunks) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.chunks, oldest)

		c.statsMu.Lock()
		c.evictions++
		c.statsMu.Unlock()
	}

	c.chunks[key] = chunk
	c.order = append(c.order, key)
	return chunk
}

// Len returns the number of cached chunks
func (c *ChunkCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chunks)
}

// Keys returns cached keys, oldest first
func (c *ChunkCache) Keys() []generation.ChunkCoord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]generation.ChunkCoord(nil), c.order...)
}

// Stats returns a snapshot of cache counters
func (c *ChunkCache) Stats() CacheStats {
	size := c.Len()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
