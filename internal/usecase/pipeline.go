package usecase

import (
	"fmt"
	"os"
	"strings"

	"textlab/internal/adapter/analyzer"
	"textlab/internal/adapter/corpus"
	"textlab/internal/domain"
	"textlab/internal/model/ngram"
	"textlab/internal/model/tfidf"
	"textlab/internal/port"
)

// Stage names reported to observers.
const (
	StageTokenize   = "tokenize"
	StageVocabulary = "vocabulary"
	StageTFIDF      = "tfidf"
	StageNGram      = "ngram"
)

// Progress is reported once per processed source.
type Progress struct {
	Stage     string
	Processed int
	Total     int
	Path      string
	CacheHit  bool
}

// Observer receives pipeline progress.
type Observer func(Progress)

// Pipeline loads corpus sources, tokenizes them and feeds the models.
type Pipeline struct {
	loader    corpus.Loader
	tokenizer port.Tokenizer
	cache     port.TokenCache
	signature string
	observer  Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache stores tokenized sources in cache.
func WithCache(cache port.TokenCache) Option {
	return func(p *Pipeline) { p.cache = cache }
}

// WithSignature identifies the tokenizer configuration in cache records.
func WithSignature(signature string) Option {
	return func(p *Pipeline) { p.signature = signature }
}

// WithObserver registers a progress callback.
func WithObserver(fn Observer) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// NewPipeline creates a new pipeline.
func NewPipeline(loader corpus.Loader, tokenizer port.Tokenizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:    loader,
		tokenizer: tokenizer,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.signature == "" {
		p.signature = fmt.Sprintf("%T", tokenizer)
	}
	p.signature = fmt.Sprintf("%s|lower=%t|width=%t", p.signature, loader.Lowercase, loader.FoldWidth)
	return p
}

// Tokenize returns the tokens of every sentence of src.
func (p *Pipeline) Tokenize(src domain.Source) ([][]string, error) {
	sentences, _, err := p.tokenize(src)
	return sentences, err
}

func (p *Pipeline) tokenize(src domain.Source) ([][]string, bool, error) {
	if p.cache != nil {
		cached, ok, err := p.cache.Get(src, p.signature)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read token cache: %w", err)
		}
		if ok {
			return cached, true, nil
		}
	}

	c, err := p.loader.Load(src.Path)
	if err != nil {
		return nil, false, err
	}
	sentences := make([][]string, len(c))
	for i, s := range c {
		sentences[i] = p.tokenizer.Tokenize(s)
	}

	if p.cache != nil {
		if err := p.cache.Put(src, p.signature, sentences); err != nil {
			return nil, false, fmt.Errorf("failed to write token cache: %w", err)
		}
	}
	return sentences, false, nil
}

// Tokens returns the flat token stream of src.
func (p *Pipeline) Tokens(src domain.Source) ([]string, error) {
	sentences, err := p.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return flatten(sentences), nil
}

// TokenizeText cleans and tokenizes free text the way sources are, so a
// query context lines up with trained contexts.
func (p *Pipeline) TokenizeText(text string) ([]string, error) {
	c, err := p.loader.LoadReader(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, s := range c {
		tokens = append(tokens, p.tokenizer.Tokenize(s)...)
	}
	return tokens, nil
}

// BuildVocabulary collects the distinct tokens of all sources. No sources
// yields an empty vocabulary.
func (p *Pipeline) BuildVocabulary(sources []domain.Source) (domain.Vocabulary, error) {
	var all []string
	err := p.each(StageVocabulary, sources, func(_ domain.Source, sentences [][]string) {
		all = append(all, flatten(sentences)...)
	})
	if err != nil {
		return domain.Vocabulary{}, err
	}
	return domain.NewVocabulary(all...), nil
}

// Documents builds the document collection for sources. Each source is one
// document for UnitSource; each sentence is one for UnitSentence.
func (p *Pipeline) Documents(sources []domain.Source, unit domain.DocumentUnit) ([][]string, []DocumentRef, error) {
	if !unit.Valid() {
		return nil, nil, fmt.Errorf("unknown document unit: %q", unit)
	}

	var docs [][]string
	var refs []DocumentRef
	err := p.each(StageTokenize, sources, func(src domain.Source, sentences [][]string) {
		if unit == domain.UnitSource {
			docs = append(docs, flatten(sentences))
			refs = append(refs, DocumentRef{Path: src.Path, Sentence: -1})
			return
		}
		for i, s := range sentences {
			docs = append(docs, s)
			refs = append(refs, DocumentRef{Path: src.Path, Sentence: i})
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return docs, refs, nil
}

// DocumentRef locates a document in its source.
type DocumentRef struct {
	Path string `json:"path"`
	// Sentence is the sentence index, or -1 for whole-source documents.
	Sentence int `json:"sentence"`
}

// TFIDFResult is a trained engine and the origin of each of its rows.
type TFIDFResult struct {
	Engine     *tfidf.Engine
	Vocabulary domain.Vocabulary
	Documents  []DocumentRef
}

// TrainTFIDF builds the vocabulary and document collection from sources and
// trains a TF-IDF engine on them.
func (p *Pipeline) TrainTFIDF(sources []domain.Source, unit domain.DocumentUnit, stopwords analyzer.StopwordSet) (*TFIDFResult, error) {
	docs, refs, err := p.Documents(sources, unit)
	if err != nil {
		return nil, err
	}

	var all []string
	for _, d := range docs {
		all = append(all, d...)
	}
	vocab := domain.NewVocabulary(all...)

	var opts []tfidf.Option
	if len(stopwords) > 0 {
		opts = append(opts, tfidf.WithStopwords(stopwords))
	}
	engine := tfidf.New(opts...)
	if _, err := engine.Train(docs, vocab); err != nil {
		return nil, fmt.Errorf("failed to train tfidf: %w", err)
	}
	p.notify(Progress{Stage: StageTFIDF, Processed: len(docs), Total: len(docs)})

	return &TFIDFResult{Engine: engine, Vocabulary: vocab, Documents: refs}, nil
}

// TrainNGram trains an order-n model on the token stream of every source.
// Each source is trained separately so n-grams never span files.
func (p *Pipeline) TrainNGram(sources []domain.Source, n int) (*ngram.Model, error) {
	model, err := ngram.New(n)
	if err != nil {
		return nil, err
	}
	err = p.each(StageNGram, sources, func(_ domain.Source, sentences [][]string) {
		model.Train(flatten(sentences))
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (p *Pipeline) each(stage string, sources []domain.Source, fn func(domain.Source, [][]string)) error {
	for i, src := range sources {
		sentences, hit, err := p.tokenize(src)
		if err != nil {
			return err
		}
		fn(src, sentences)
		p.notify(Progress{Stage: stage, Processed: i + 1, Total: len(sources), Path: src.Path, CacheHit: hit})
	}
	return nil
}

func (p *Pipeline) notify(pr Progress) {
	if p.observer != nil {
		p.observer(pr)
	}
}

func flatten(sentences [][]string) []string {
	n := 0
	for _, s := range sentences {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range sentences {
		out = append(out, s...)
	}
	return out
}

// SourcesFromPaths stats plain file paths into sources.
func SourcesFromPaths(paths ...string) ([]domain.Source, error) {
	sources := make([]domain.Source, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("invalid source: %w", err)
		}
		sources = append(sources, domain.Source{
			Path:    path,
			ModTime: info.ModTime().UnixNano(),
			Size:    info.Size(),
		})
	}
	return sources, nil
}
