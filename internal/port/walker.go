package port

import "textlab/internal/domain"

type SourceWalker interface {
	Expand(paths []string) ([]domain.Source, error)
}

// TokenCache stores tokenized sentences per source.
type TokenCache interface {
	Get(src domain.Source, signature string) ([][]string, bool, error)

	Put(src domain.Source, signature string, sentences [][]string) error
}
