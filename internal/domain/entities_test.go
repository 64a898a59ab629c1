package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVocabulary_SortedAndUnique(t *testing.T) {
	v := NewVocabulary("world", "hello", "there", "hello", "world")

	assert.Equal(t, []string{"hello", "there", "world"}, v.Terms())
	assert.Equal(t, 3, v.Len())
	assert.True(t, sort.StringsAreSorted(v.Terms()))

	idx, ok := v.Index("there")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "there", v.Term(idx))

	_, ok = v.Index("missing")
	assert.False(t, ok)
}

func TestNewVocabulary_Empty(t *testing.T) {
	v := NewVocabulary()
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Terms())
}

func TestVocabulary_TermsIsCopy(t *testing.T) {
	v := NewVocabulary("b", "a")
	terms := v.Terms()
	terms[0] = "zzz"
	assert.Equal(t, "a", v.Term(0))
}

func TestDocumentUnit_Valid(t *testing.T) {
	assert.True(t, UnitSource.Valid())
	assert.True(t, UnitSentence.Valid())
	assert.False(t, DocumentUnit("paragraph").Valid())
}
