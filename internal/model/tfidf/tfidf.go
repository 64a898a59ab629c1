// Package tfidf weights vocabulary terms per document with smoothed TF-IDF
// and extracts the highest-weighted terms as keywords.
//
// The engine keeps raw term counts, document frequencies, the IDF vector and
// the TF-IDF matrix as trained state. Columns follow the vocabulary order.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"textlab/internal/adapter/analyzer"
	"textlab/internal/domain"
)

const (
	// Epsilon is added to every IDF value so a term present in all
	// documents keeps a non-zero weight.
	Epsilon = 1e-8

	// DefaultTopK is used when ExtractKeywords is called with topK <= 0.
	DefaultTopK = 5
)

var (
	ErrNotTrained         = errors.New("tfidf: model not trained")
	ErrEmptyVocabulary    = errors.New("tfidf: empty vocabulary")
	ErrNoDocuments        = errors.New("tfidf: no documents")
	ErrDocIndexOutOfRange = errors.New("tfidf: document index out of range")
)

// DocIndexError reports a document index outside the trained collection.
type DocIndexError struct {
	Index int
	N     int
}

func (e *DocIndexError) Error() string {
	return fmt.Sprintf("tfidf: document index %d out of range [0, %d)", e.Index, e.N)
}

// Is lets errors.Is match ErrDocIndexOutOfRange.
func (e *DocIndexError) Is(target error) bool {
	return target == ErrDocIndexOutOfRange
}

// Keyword is a vocabulary term with its weight in one document.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithStopwords drops stopwords from every document before counting.
func WithStopwords(set analyzer.StopwordSet) Option {
	return func(e *Engine) {
		e.stopwords = set
	}
}

// Engine is a TF-IDF model. It is safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	stopwords analyzer.StopwordSet

	vocab   domain.Vocabulary
	tf      *mat.Dense
	docFreq []int
	idf     *mat.VecDense
	tfidf   *mat.Dense
}

// New creates an untrained engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Train builds the TF, DF, IDF and TF-IDF state for docs against vocab and
// returns a copy of the N×V TF-IDF matrix. Tokens outside vocab are ignored.
// Training again replaces the previous state.
func (e *Engine) Train(docs [][]string, vocab domain.Vocabulary) (*mat.Dense, error) {
	if vocab.Len() == 0 {
		return nil, ErrEmptyVocabulary
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if len(e.stopwords) > 0 {
		docs = analyzer.RemoveStopwordsDocs(docs, e.stopwords)
	}

	n, v := len(docs), vocab.Len()
	tf := mat.NewDense(n, v, nil)
	docFreq := make([]int, v)

	for i, doc := range docs {
		counts := make(map[int]int)
		for _, tok := range doc {
			if j, ok := vocab.Index(tok); ok {
				counts[j]++
			}
		}
		for j, c := range counts {
			tf.Set(i, j, float64(c))
			docFreq[j]++
		}
	}

	idf := mat.NewVecDense(v, nil)
	for j, df := range docFreq {
		idf.SetVec(j, IDF(n, df))
	}

	tfidf := mat.NewDense(n, v, nil)
	tfidf.Apply(func(_, j int, x float64) float64 {
		return x * idf.AtVec(j)
	}, tf)

	e.mu.Lock()
	e.vocab = vocab
	e.tf = tf
	e.docFreq = docFreq
	e.idf = idf
	e.tfidf = tfidf
	e.mu.Unlock()

	return mat.DenseCopyOf(tfidf), nil
}

// IDF is the smoothed inverse document frequency ln((n+1)/(1+df)) + Epsilon.
func IDF(n, df int) float64 {
	return math.Log(float64(n+1)/float64(1+df)) + Epsilon
}

// ExtractKeywords returns the topK terms of document docIndex ordered by
// descending weight. topK <= 0 means DefaultTopK, so the result has
// min(DefaultTopK, V) entries in that case and min(topK, V) otherwise.
func (e *Engine) ExtractKeywords(docIndex, topK int) ([]string, error) {
	ranked, err := e.RankKeywords(docIndex, topK)
	if err != nil {
		return nil, err
	}
	terms := make([]string, len(ranked))
	for i, k := range ranked {
		terms[i] = k.Term
	}
	return terms, nil
}

// RankKeywords is ExtractKeywords with scores. Equal scores keep vocabulary
// order. topK <= 0 means DefaultTopK.
func (e *Engine) RankKeywords(docIndex, topK int) ([]Keyword, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.tfidf == nil {
		return nil, ErrNotTrained
	}
	n, v := e.tfidf.Dims()
	if docIndex < 0 || docIndex >= n {
		return nil, &DocIndexError{Index: docIndex, N: n}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > v {
		topK = v
	}

	row := mat.Row(nil, docIndex, e.tfidf)
	order := make([]int, v)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	out := make([]Keyword, topK)
	for i := 0; i < topK; i++ {
		j := order[i]
		out[i] = Keyword{Term: e.vocab.Term(j), Score: row[j]}
	}
	return out, nil
}

// Trained reports whether Train has succeeded at least once.
func (e *Engine) Trained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tfidf != nil
}

// Shape returns the number of documents and vocabulary terms.
func (e *Engine) Shape() (n, v int, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.tfidf == nil {
		return 0, 0, ErrNotTrained
	}
	n, v = e.tfidf.Dims()
	return n, v, nil
}

func (e *Engine) Vocabulary() (domain.Vocabulary, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.tfidf == nil {
		return domain.Vocabulary{}, ErrNotTrained
	}
	return e.vocab, nil
}

// TF returns a copy of the raw count matrix.
func (e *Engine) TF() (*mat.Dense, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.tf == nil {
		return nil, ErrNotTrained
	}
	return mat.DenseCopyOf(e.tf), nil
}

// DocFreq returns a copy of the per-term document counts.
func (e *Engine) DocFreq() ([]int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.docFreq == nil {
		return nil, ErrNotTrained
	}
	return append([]int(nil), e.docFreq...), nil
}

func (e *Engine) IDF() (*mat.VecDense, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.idf == nil {
		return nil, ErrNotTrained
	}
	return mat.VecDenseCopyOf(e.idf), nil
}

func (e *Engine) TFIDF() (*mat.Dense, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.tfidf == nil {
		return nil, ErrNotTrained
	}
	return mat.DenseCopyOf(e.tfidf), nil
}
