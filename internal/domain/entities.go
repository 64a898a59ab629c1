package domain

import "sort"

// Corpus is the ordered list of cleaned sentences extracted from one source.
type Corpus []string

// Document is a tokenized document.
type Document []string

// Source describes a corpus file on disk.
type Source struct {
	Path    string
	ModTime int64
	Size    int64
}

// DocumentUnit selects how sources are split into documents.
type DocumentUnit string

const (
	// UnitSource makes every source file one document.
	UnitSource DocumentUnit = "source"
	// UnitSentence makes every sentence one document.
	UnitSentence DocumentUnit = "sentence"
)

// Valid reports whether u is a known unit.
func (u DocumentUnit) Valid() bool {
	return u == UnitSource || u == UnitSentence
}

// Vocabulary is a sorted set of distinct tokens. The position of a term
// is its column in every matrix built against the vocabulary.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary deduplicates and sorts tokens.
func NewVocabulary(tokens ...string) Vocabulary {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}
	return Vocabulary{terms: terms, index: index}
}

// Len returns the number of terms.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Term returns the term at column i.
func (v Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Index returns the column of term.
func (v Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the sorted terms.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
