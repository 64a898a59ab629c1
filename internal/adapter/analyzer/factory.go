package analyzer

import (
	"fmt"
	"os"

	"textlab/config"
	"textlab/internal/port"
)

// NewFromConfig builds the tokenizer chain cfg describes, wrapped in an LRU
// memo, and returns it with its cache signature.
func NewFromConfig(cfg config.TokenizerConfig) (*CachedTokenizer, string, error) {
	signature, err := Signature(cfg)
	if err != nil {
		return nil, "", err
	}

	var tok port.Tokenizer
	switch cfg.Kind {
	case "whitespace":
		tok = NewWhitespaceTokenizer()
	case "gse":
		gseTok, err := NewGSETokenizer(cfg.UserDict, cfg.HMM)
		if err != nil {
			return nil, "", err
		}
		tok = gseTok
	}
	if cfg.Stemming {
		tok = NewStemmingTokenizer(tok, cfg.Language)
	}

	cached, err := NewCachedTokenizer(tok, cfg.CacheSize)
	if err != nil {
		return nil, "", err
	}
	return cached, signature, nil
}

// Signature identifies a tokenizer configuration in token cache records. A
// user dictionary is identified by path, modification time and size, so
// editing it invalidates cached tokens.
func Signature(cfg config.TokenizerConfig) (string, error) {
	var signature string
	switch cfg.Kind {
	case "whitespace":
		signature = "whitespace"
	case "gse":
		signature = fmt.Sprintf("gse|hmm=%t", cfg.HMM)
		if cfg.UserDict != "" {
			info, err := os.Stat(cfg.UserDict)
			if err != nil {
				return "", fmt.Errorf("failed to stat user dictionary: %w", err)
			}
			signature += fmt.Sprintf("|dict=%s@%d:%d", cfg.UserDict, info.ModTime().UnixNano(), info.Size())
		}
	default:
		return "", fmt.Errorf("unknown tokenizer kind: %q", cfg.Kind)
	}
	if cfg.Stemming {
		signature += "|stem=" + cfg.Language
	}
	return signature, nil
}
