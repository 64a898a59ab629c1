package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"textlab/internal/domain"
	"textlab/internal/port"
)

var _ port.TokenCache = (*MemoryCache)(nil)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	src := domain.Source{Path: "a.txt", ModTime: 10, Size: 4}

	_, ok, err := c.Get(src, "ws")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(src, "ws", [][]string{{"a", "b"}}))
	got, ok, err := c.Get(src, "ws")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [][]string{{"a", "b"}}, got)

	got[0][0] = "mutated"
	got, _, _ = c.Get(src, "ws")
	assert.Equal(t, "a", got[0][0])

	_, ok, _ = c.Get(src, "gse")
	assert.False(t, ok, "signature mismatch is a miss")

	changed := src
	changed.ModTime = 11
	_, ok, _ = c.Get(changed, "ws")
	assert.False(t, ok, "modified source is a miss")

	assert.Equal(t, 1, c.Len())
}
