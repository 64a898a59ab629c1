package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"textlab/config"
	"textlab/internal/adapter/analyzer"
	"textlab/internal/adapter/corpus"
	"textlab/internal/adapter/fs"
	"textlab/internal/adapter/memstore"
	"textlab/internal/adapter/store"
	"textlab/internal/domain"
	"textlab/internal/usecase"
)

func main() {
	dir := flag.String("dir", ".", "Corpus directory")
	order := flag.Int("n", 2, "N-gram order")
	kind := flag.String("tokenizer", "", "Tokenizer kind (default from config)")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *kind != "" {
		cfg.Tokenizer.Kind = *kind
	}

	sources, err := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes).Expand([]string{*dir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving sources: %v\n", err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./corpus [-n 3] [-tokenizer whitespace]")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Tokenization with a cold, a warm and an in-memory token cache")
		fmt.Println("  2. TF-IDF training")
		fmt.Println("  3. N-gram training")
		os.Exit(1)
	}

	tmp, err := os.MkdirTemp("", "textlab-bench")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmp)

	cache, err := store.NewBoltCache(filepath.Join(tmp, "cache.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	tok, signature, err := analyzer.NewFromConfig(cfg.Tokenizer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tokenizer init failed: %v\n", err)
		os.Exit(1)
	}
	loader := corpus.Loader{Lowercase: cfg.Corpus.Lowercase, FoldWidth: cfg.Corpus.FoldWidth}
	p := usecase.NewPipeline(loader, tok, usecase.WithCache(cache), usecase.WithSignature(signature))

	fmt.Println("CORPUS BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Sources:   %d\n", len(sources))
	fmt.Printf("Tokenizer: %s\n", signature)
	fmt.Println()

	cold := timed("vocabulary (cold cache)", func() error {
		v, err := p.BuildVocabulary(sources)
		if err == nil {
			fmt.Printf("   %d terms\n", v.Len())
		}
		return err
	})
	warm := timed("vocabulary (warm cache)", func() error {
		_, err := p.BuildVocabulary(sources)
		return err
	})

	mem := usecase.NewPipeline(loader, tok, usecase.WithCache(memstore.NewMemoryCache()), usecase.WithSignature(signature))
	if _, err := mem.BuildVocabulary(sources); err != nil {
		fmt.Fprintf(os.Stderr, "Error priming memory cache: %v\n", err)
		os.Exit(1)
	}
	timed("vocabulary (memory cache)", func() error {
		_, err := mem.BuildVocabulary(sources)
		return err
	})

	timed("tfidf (per source)", func() error {
		res, err := p.TrainTFIDF(sources, domain.UnitSource, nil)
		if err == nil {
			n, v, _ := res.Engine.Shape()
			fmt.Printf("   %d x %d matrix\n", n, v)
		}
		return err
	})
	timed(fmt.Sprintf("%d-gram", *order), func() error {
		m, err := p.TrainNGram(sources, *order)
		if err == nil {
			fmt.Printf("   %d contexts, %d words\n", m.ContextCount(), m.VocabSize())
		}
		return err
	})

	stats, _ := cache.Stats()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("CACHE:\n")
	fmt.Printf("  Sentences: %d\n", stats.Sentences)
	fmt.Printf("  Tokens:    %d\n", stats.Tokens)
	if warm > 0 {
		fmt.Printf("  Speedup:   %.1fx\n", float64(cold)/float64(warm))
	}
}

func timed(name string, fn func() error) time.Duration {
	start := time.Now()
	if err := fn(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", name, err)
		os.Exit(1)
	}
	d := time.Since(start)
	fmt.Printf("%-26s %v\n", name, d.Round(time.Microsecond))
	return d
}
