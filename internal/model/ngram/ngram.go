// Package ngram implements a count-based n-gram language model with
// add-one smoothing.
package ngram

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Epsilon keeps Probability finite for an untrained model.
const Epsilon = 1e-6

// ErrInvalidOrder is returned by New for n < 1.
var ErrInvalidOrder = errors.New("ngram: order must be at least 1")

// WordCount is a next-word with its observed count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type contextEntry struct {
	counts map[string]int
	order  []string // next-words in first-seen order
	total  int
}

// Model maps every (n-1)-token context to the counts of the tokens that
// followed it. Training is additive. Model is safe for concurrent use.
type Model struct {
	n int

	mu       sync.RWMutex
	contexts map[string]*contextEntry
	vocab    map[string]struct{}
}

// New creates an empty model of order n. n = 1 is a unigram model keyed by
// the empty context.
func New(n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, n)
	}
	return &Model{
		n:        n,
		contexts: make(map[string]*contextEntry),
		vocab:    make(map[string]struct{}),
	}, nil
}

// Order returns n.
func (m *Model) Order() int {
	return m.n
}

// Train counts every n-gram in tokens. Fewer than n tokens is a no-op.
func (m *Model) Train(tokens []string) {
	if len(tokens) < m.n {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i+m.n <= len(tokens); i++ {
		key := contextKey(tokens[i : i+m.n-1])
		next := tokens[i+m.n-1]

		entry, ok := m.contexts[key]
		if !ok {
			entry = &contextEntry{counts: make(map[string]int)}
			m.contexts[key] = entry
		}
		if _, seen := entry.counts[next]; !seen {
			entry.order = append(entry.order, next)
		}
		entry.counts[next]++
		entry.total++
		m.vocab[next] = struct{}{}
	}
}

// PredictNextWord returns the most frequent word after the last n-1 tokens of
// context. Among equally frequent words the one recorded first wins. It
// returns false when context is shorter than n-1 or was never observed.
func (m *Model) PredictNextWord(context []string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.lookup(context)
	if !ok {
		return "", false
	}

	best, bestCount := "", 0
	for _, w := range entry.order {
		if c := entry.counts[w]; c > bestCount {
			best, bestCount = w, c
		}
	}
	return best, bestCount > 0
}

// TopNextWords returns up to k next-words for context ordered by descending
// count, ties in first-seen order. k <= 0 returns all of them.
func (m *Model) TopNextWords(context []string, k int) []WordCount {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.lookup(context)
	if !ok {
		return nil
	}

	out := make([]WordCount, len(entry.order))
	for i, w := range entry.order {
		out[i] = WordCount{Word: w, Count: entry.counts[w]}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// Probability returns the add-one smoothed P(word | context):
//
//	(count(word|context) + 1) / (total(context) + V + Epsilon)
//
// where V is the number of distinct next-words across all contexts. Unseen
// contexts and words get the smoothed floor; it never fails.
func (m *Model) Probability(word string, context []string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count, total := 0, 0
	if entry, ok := m.lookup(context); ok {
		count = entry.counts[word]
		total = entry.total
	}
	return float64(count+1) / (float64(total+len(m.vocab)) + Epsilon)
}

// Counts returns a copy of the next-word counts for context, or nil when
// the context is unseen.
func (m *Model) Counts(context []string) map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.lookup(context)
	if !ok {
		return nil
	}
	out := make(map[string]int, len(entry.counts))
	for w, c := range entry.counts {
		out[w] = c
	}
	return out
}

// VocabSize returns the number of distinct next-words observed.
func (m *Model) VocabSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vocab)
}

// ContextCount returns the number of distinct contexts observed.
func (m *Model) ContextCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.contexts)
}

func (m *Model) lookup(context []string) (*contextEntry, bool) {
	need := m.n - 1
	if len(context) < need {
		return nil, false
	}
	entry, ok := m.contexts[contextKey(context[len(context)-need:])]
	return entry, ok
}

// contextKey length-prefixes every token so that no two distinct contexts
// share a key, whatever runes the tokens contain.
func contextKey(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return b.String()
}
