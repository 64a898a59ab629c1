package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-ego/gse"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kljensen/snowball"

	"textlab/internal/port"
)

// WhitespaceTokenizer splits sentences on Unicode whitespace.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer creates a new WhitespaceTokenizer.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

// Tokenize splits sentence into whitespace-separated fields.
func (t *WhitespaceTokenizer) Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

// GSETokenizer segments mixed Chinese and English text with a dictionary
// based segmenter and HMM for unknown words.
type GSETokenizer struct {
	seg gse.Segmenter
	hmm bool
}

// NewGSETokenizer loads the embedded Chinese dictionary and, when userDict
// is non-empty, a user dictionary file on top of it.
func NewGSETokenizer(userDict string, hmm bool) (*GSETokenizer, error) {
	t := &GSETokenizer{hmm: hmm}
	t.seg.AlphaNum = true

	if err := t.seg.LoadDictEmbed("zh"); err != nil {
		return nil, fmt.Errorf("failed to load embedded dictionary: %w", err)
	}
	if userDict != "" {
		if err := t.seg.LoadDict(userDict); err != nil {
			return nil, fmt.Errorf("failed to load user dictionary %s: %w", userDict, err)
		}
	}
	return t, nil
}

// Tokenize segments sentence and drops whitespace-only segments.
func (t *GSETokenizer) Tokenize(sentence string) []string {
	segments := t.seg.Cut(sentence, t.hmm)
	tokens := make([]string, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			continue
		}
		tokens = append(tokens, s)
	}
	return tokens
}

// StemmingTokenizer reduces ASCII-letter tokens produced by the wrapped
// tokenizer to their Snowball stem. Other tokens pass through unchanged.
type StemmingTokenizer struct {
	next     port.Tokenizer
	language string
}

// NewStemmingTokenizer wraps next with a stemmer for language.
func NewStemmingTokenizer(next port.Tokenizer, language string) *StemmingTokenizer {
	if language == "" {
		language = "english"
	}
	return &StemmingTokenizer{next: next, language: language}
}

// Tokenize tokenizes and stems.
func (t *StemmingTokenizer) Tokenize(sentence string) []string {
	tokens := t.next.Tokenize(sentence)
	for i, tok := range tokens {
		if !isASCIIWord(tok) {
			continue
		}
		stemmed, err := snowball.Stem(tok, t.language, false)
		if err != nil || stemmed == "" {
			continue
		}
		tokens[i] = stemmed
	}
	return tokens
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// CachedTokenizer memoizes the wrapped tokenizer per sentence. Corpora with
// repeated boilerplate lines skip re-segmentation.
type CachedTokenizer struct {
	next  port.Tokenizer
	cache *lru.Cache[string, []string]
}

// NewCachedTokenizer wraps next with an LRU memo holding up to size sentences.
func NewCachedTokenizer(next port.Tokenizer, size int) (*CachedTokenizer, error) {
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &CachedTokenizer{next: next, cache: cache}, nil
}

// Tokenize returns a fresh copy of the memoized tokens for sentence.
func (t *CachedTokenizer) Tokenize(sentence string) []string {
	if tokens, ok := t.cache.Get(sentence); ok {
		return append([]string(nil), tokens...)
	}
	tokens := t.next.Tokenize(sentence)
	t.cache.Add(sentence, append([]string(nil), tokens...))
	return tokens
}

// Len returns the number of memoized sentences.
func (t *CachedTokenizer) Len() int {
	return t.cache.Len()
}
