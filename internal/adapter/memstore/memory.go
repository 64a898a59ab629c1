package memstore

import (
	"sync"

	"textlab/internal/domain"
)

type entry struct {
	modTime   int64
	size      int64
	signature string
	sentences [][]string
}

// MemoryCache is a process-local token cache with the same hit rules as the
// bbolt cache.
type MemoryCache struct {
	mu      sync.RWMutex
	sources map[string]entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{sources: make(map[string]entry)}
}

func (c *MemoryCache) Get(src domain.Source, signature string) ([][]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.sources[src.Path]
	if !ok || e.modTime != src.ModTime || e.size != src.Size || e.signature != signature {
		return nil, false, nil
	}
	return copySentences(e.sentences), true, nil
}

func (c *MemoryCache) Put(src domain.Source, signature string, sentences [][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[src.Path] = entry{
		modTime:   src.ModTime,
		size:      src.Size,
		signature: signature,
		sentences: copySentences(sentences),
	}
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sources)
}

func copySentences(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, s := range in {
		out[i] = append([]string(nil), s...)
	}
	return out
}
