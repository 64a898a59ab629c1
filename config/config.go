package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for textlab.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Stopwords StopwordsConfig `yaml:"stopwords"`
	TFIDF     TFIDFConfig     `yaml:"tfidf"`
	NGram     NGramConfig     `yaml:"ngram"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CorpusConfig controls source discovery and cleaning.
type CorpusConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Lowercase bool     `yaml:"lowercase"`
	FoldWidth bool     `yaml:"fold_width"` // NFKC before cleaning
}

// TokenizerConfig selects the segmentation backend.
type TokenizerConfig struct {
	Kind      string `yaml:"kind"`      // "gse" or "whitespace"
	UserDict  string `yaml:"user_dict"` // extra gse dictionary file
	HMM       bool   `yaml:"hmm"`
	Stemming  bool   `yaml:"stemming"`
	Language  string `yaml:"language"` // snowball language
	CacheSize int    `yaml:"cache_size"`
}

type StopwordsConfig struct {
	Path string `yaml:"path"`
}

type TFIDFConfig struct {
	TopK int    `yaml:"top_k"`
	Unit string `yaml:"unit"` // "source" or "sentence"
}

type NGramConfig struct {
	Order int `yaml:"order"`
}

// CacheConfig controls the on-disk token cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // defaults to <dir>/.textlab/cache.db
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Includes:  []string{"**/*.txt"},
			Excludes:  []string{"**/.git/**", "**/.textlab/**"},
			Lowercase: true,
		},
		Tokenizer: TokenizerConfig{
			Kind:      "gse",
			HMM:       true,
			Language:  "english",
			CacheSize: 4096,
		},
		TFIDF: TFIDFConfig{
			TopK: 5,
			Unit: "source",
		},
		NGram: NGramConfig{
			Order: 2,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyEnv()

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for textlab.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "textlab.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".textlab", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override selected settings.
func (c *Config) applyEnv() {
	if v := os.Getenv("TEXTLAB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TEXTLAB_TOKENIZER"); v != "" {
		c.Tokenizer.Kind = v
	}
}

// Validate rejects settings that cannot produce a working pipeline.
func (c *Config) Validate() error {
	switch c.Tokenizer.Kind {
	case "gse", "whitespace":
	default:
		return fmt.Errorf("unknown tokenizer kind: %q", c.Tokenizer.Kind)
	}
	switch c.TFIDF.Unit {
	case "source", "sentence":
	default:
		return fmt.Errorf("unknown tfidf unit: %q", c.TFIDF.Unit)
	}
	if c.TFIDF.TopK < 0 {
		return fmt.Errorf("tfidf.top_k must not be negative, got %d", c.TFIDF.TopK)
	}
	if c.NGram.Order < 1 {
		return fmt.Errorf("ngram.order must be at least 1, got %d", c.NGram.Order)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Logging.Level)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CachePath returns the token cache location for dir.
func (c *Config) CachePath(dir string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(dir, ".textlab", "cache.db")
}

// EnsureStateDir ensures the .textlab directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".textlab"), 0755)
}
