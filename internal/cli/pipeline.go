package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"textlab/config"
	"textlab/internal/adapter/analyzer"
	"textlab/internal/adapter/corpus"
	"textlab/internal/adapter/fs"
	"textlab/internal/adapter/store"
	"textlab/internal/domain"
	"textlab/internal/usecase"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	termStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// session bundles what every corpus command needs.
type session struct {
	pipeline *usecase.Pipeline
	sources  []domain.Source
	cache    *store.BoltCache
}

func (s *session) Close() {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logger.Warn("failed to close token cache", "error", err)
		}
	}
}

// openSession expands args into sources and assembles the pipeline the
// config describes.
func openSession(args []string, stderr io.Writer, quiet bool) (*session, error) {
	cfg := GetConfig()

	walker := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	sources, err := walker.Expand(args)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved sources", "count", len(sources))

	if cfg.Tokenizer.Kind == "gse" {
		logger.Debug("loading gse dictionary", "user_dict", cfg.Tokenizer.UserDict)
	}
	tokenizer, signature, err := analyzer.NewFromConfig(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}

	s := &session{sources: sources}
	opts := []usecase.Option{usecase.WithSignature(signature)}

	if cfg.Cache.Enabled {
		if cfg.Cache.Path == "" {
			if err := config.EnsureStateDir(GetRootDir()); err != nil {
				return nil, fmt.Errorf("failed to create .textlab directory: %w", err)
			}
		}
		cache, err := store.NewBoltCache(cfg.CachePath(GetRootDir()))
		if err != nil {
			return nil, fmt.Errorf("failed to open token cache: %w", err)
		}
		s.cache = cache
		opts = append(opts, usecase.WithCache(cache))
	}

	if !quiet && len(sources) > 1 {
		opts = append(opts, usecase.WithObserver(progressObserver(stderr)))
	}

	loader := corpus.Loader{Lowercase: cfg.Corpus.Lowercase, FoldWidth: cfg.Corpus.FoldWidth}
	s.pipeline = usecase.NewPipeline(loader, tokenizer, opts...)
	return s, nil
}

func loadStopwords(path string) (analyzer.StopwordSet, error) {
	if path == "" {
		path = GetConfig().Stopwords.Path
	}
	if path == "" {
		return nil, nil
	}
	set, err := corpus.LoadStopwords(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded stopwords", "path", path, "count", len(set))
	return set, nil
}

func progressObserver(w io.Writer) usecase.Observer {
	var bar *progressbar.ProgressBar
	return func(p usecase.Progress) {
		if p.Path == "" {
			return
		}
		if bar == nil || p.Processed == 1 {
			bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+p.Stage+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		}
		bar.Set(p.Processed)
		logger.Debug("processed source", "stage", p.Stage, "path", p.Path, "cache_hit", p.CacheHit)
	}
}
