package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"textlab/internal/domain"
	"textlab/internal/model/tfidf"
)

var (
	keywordsTopK      int
	keywordsStopwords string
	keywordsUnit      string
	keywordsJSON      bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <source>...",
	Short: "Rank the top TF-IDF keywords of every document",
	Long: `Train a TF-IDF model over the given corpora and print the highest
weighted vocabulary terms of each document. A document is a whole source
file by default, or a single sentence with --unit sentence.

Examples:
  textlab keywords corpus/ --stopwords stopwords.txt
  textlab keywords a.txt b.txt -k 10 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
	keywordsCmd.Flags().IntVarP(&keywordsTopK, "top-k", "k", 0, "keywords per document, at least 1 (default from config)")
	keywordsCmd.Flags().StringVar(&keywordsStopwords, "stopwords", "", "stopword file, one word per line")
	keywordsCmd.Flags().StringVar(&keywordsUnit, "unit", "", "document unit: source or sentence (default from config)")
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "output as JSON")
}

// DocumentKeywords is the JSON output of the keywords command.
type DocumentKeywords struct {
	Path     string          `json:"path"`
	Sentence int             `json:"sentence"` // -1 for a whole source
	Keywords []tfidf.Keyword `json:"keywords"`
}

func runKeywords(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	topK := cfg.TFIDF.TopK
	if cmd.Flags().Changed("top-k") {
		if keywordsTopK < 1 {
			return fmt.Errorf("--top-k must be at least 1, got %d", keywordsTopK)
		}
		topK = keywordsTopK
	}
	unit := domain.DocumentUnit(cfg.TFIDF.Unit)
	if keywordsUnit != "" {
		unit = domain.DocumentUnit(keywordsUnit)
	}

	stopwords, err := loadStopwords(keywordsStopwords)
	if err != nil {
		return err
	}

	s, err := openSession(args, cmd.ErrOrStderr(), keywordsJSON)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.pipeline.TrainTFIDF(s.sources, unit, stopwords)
	if err != nil {
		return err
	}
	n, v, err := res.Engine.Shape()
	if err != nil {
		return err
	}
	logger.Info("tfidf trained", "documents", n, "terms", v)

	results := make([]DocumentKeywords, 0, n)
	for i, ref := range res.Documents {
		ranked, err := res.Engine.RankKeywords(i, topK)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		results = append(results, DocumentKeywords{Path: ref.Path, Sentence: ref.Sentence, Keywords: ranked})
	}

	out := cmd.OutOrStdout()
	if keywordsJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for i, dk := range results {
		title := dk.Path
		if dk.Sentence >= 0 {
			title = fmt.Sprintf("%s#%d", dk.Path, dk.Sentence)
		}
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("[%d] %s", i, title)))
		for _, kw := range dk.Keywords {
			fmt.Fprintf(out, "  %s %s\n", termStyle.Render(kw.Term), dimStyle.Render(fmt.Sprintf("%.4f", kw.Score)))
		}
	}
	return nil
}
