package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textlab/internal/domain"
)

func openCache(t *testing.T) *BoltCache {
	t.Helper()
	c, err := NewBoltCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBoltCache_PutGet(t *testing.T) {
	c := openCache(t)
	src := domain.Source{Path: "/data/a.txt", ModTime: 100, Size: 12}
	sentences := [][]string{{"hello", "world"}, {"hello", "there"}}

	_, ok, err := c.Get(src, "ws")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(src, "ws", sentences))

	got, ok, err := c.Get(src, "ws")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sentences, got)
}

func TestBoltCache_MissOnChangedMetadata(t *testing.T) {
	c := openCache(t)
	src := domain.Source{Path: "/data/a.txt", ModTime: 100, Size: 12}
	require.NoError(t, c.Put(src, "ws", [][]string{{"a"}}))

	tests := []struct {
		name string
		src  domain.Source
		sig  string
	}{
		{"mod time", domain.Source{Path: src.Path, ModTime: 101, Size: 12}, "ws"},
		{"size", domain.Source{Path: src.Path, ModTime: 100, Size: 13}, "ws"},
		{"signature", src, "gse"},
		{"path", domain.Source{Path: "/data/b.txt", ModTime: 100, Size: 12}, "ws"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := c.Get(tt.src, tt.sig)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBoltCache_StatsAndClear(t *testing.T) {
	c := openCache(t)
	require.NoError(t, c.Put(domain.Source{Path: "a"}, "ws", [][]string{{"x", "y"}, {"z"}}))
	require.NoError(t, c.Put(domain.Source{Path: "b"}, "ws", [][]string{{"q"}}))

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Sources: 2, Sentences: 3, Tokens: 4}, stats)

	require.NoError(t, c.Delete("a"))
	stats, err = c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sources)

	require.NoError(t, c.Clear())
	stats, err = c.Stats()
	require.NoError(t, err)
	assert.Equal(t, CacheStats{}, stats)
}

func TestBoltCache_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	src := domain.Source{Path: "a", ModTime: 1, Size: 1}

	c, err := NewBoltCache(path)
	require.NoError(t, err)
	require.NoError(t, c.Put(src, "ws", [][]string{{"a"}}))
	require.NoError(t, c.Close())

	c, err = NewBoltCache(path)
	require.NoError(t, err)
	defer c.Close()

	got, ok, err := c.Get(src, "ws")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [][]string{{"a"}}, got)
}
