package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tokenizer.Kind != "gse" {
		t.Errorf("expected Tokenizer.Kind=gse, got %s", cfg.Tokenizer.Kind)
	}
	if cfg.TFIDF.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.TFIDF.TopK)
	}
	if cfg.TFIDF.Unit != "source" {
		t.Errorf("expected Unit=source, got %s", cfg.TFIDF.Unit)
	}
	if cfg.NGram.Order != 2 {
		t.Errorf("expected Order=2, got %d", cfg.NGram.Order)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "textlab.yaml")

	content := `
tokenizer:
  kind: whitespace
  stemming: true
ngram:
  order: 3
corpus:
  lowercase: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tokenizer.Kind != "whitespace" {
		t.Errorf("expected Kind=whitespace, got %s", cfg.Tokenizer.Kind)
	}
	if !cfg.Tokenizer.Stemming {
		t.Error("expected Stemming=true")
	}
	if cfg.NGram.Order != 3 {
		t.Errorf("expected Order=3, got %d", cfg.NGram.Order)
	}
	if cfg.Corpus.Lowercase {
		t.Error("expected Lowercase=false")
	}
	// Unset sections keep their defaults.
	if cfg.TFIDF.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.TFIDF.TopK)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "textlab.yaml")
	if err := os.WriteFile(configPath, []byte("ngram: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".textlab"), 0755); err != nil {
		t.Fatal(err)
	}
	content := `
tfidf:
  top_k: 12
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".textlab", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TFIDF.TopK != 12 {
		t.Errorf("expected TopK=12, got %d", cfg.TFIDF.TopK)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TEXTLAB_LOG_LEVEL", "debug")
	t.Setenv("TEXTLAB_TOKENIZER", "whitespace")

	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
	if cfg.Tokenizer.Kind != "whitespace" {
		t.Errorf("expected Kind=whitespace, got %s", cfg.Tokenizer.Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"order zero", func(c *Config) { c.NGram.Order = 0 }},
		{"negative top k", func(c *Config) { c.TFIDF.TopK = -1 }},
		{"unknown tokenizer", func(c *Config) { c.Tokenizer.Kind = "jieba" }},
		{"unknown unit", func(c *Config) { c.TFIDF.Unit = "paragraph" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textlab.yaml")
	cfg := DefaultConfig()
	cfg.NGram.Order = 4
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NGram.Order != 4 {
		t.Errorf("expected Order=4, got %d", loaded.NGram.Order)
	}
}

func TestCachePath(t *testing.T) {
	cfg := DefaultConfig()
	expected := filepath.Join("/home/user/project", ".textlab", "cache.db")
	if got := cfg.CachePath("/home/user/project"); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	cfg.Cache.Path = "/tmp/custom.db"
	if got := cfg.CachePath("/home/user/project"); got != "/tmp/custom.db" {
		t.Errorf("expected custom path, got %s", got)
	}
}
