package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var vocabJSON bool

var vocabCmd = &cobra.Command{
	Use:   "vocab <source>...",
	Short: "Build the sorted vocabulary of one or more corpora",
	Long: `Load, clean and tokenize every source and print the sorted set of
distinct tokens, one per line.

Examples:
  textlab vocab corpus/
  textlab vocab a.txt b.txt --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.Flags().BoolVar(&vocabJSON, "json", false, "output as JSON")
}

func runVocab(cmd *cobra.Command, args []string) error {
	s, err := openSession(args, cmd.ErrOrStderr(), vocabJSON)
	if err != nil {
		return err
	}
	defer s.Close()

	vocab, err := s.pipeline.BuildVocabulary(s.sources)
	if err != nil {
		return fmt.Errorf("failed to build vocabulary: %w", err)
	}
	logger.Info("vocabulary built", "sources", len(s.sources), "terms", vocab.Len())

	out := cmd.OutOrStdout()
	if vocabJSON {
		data, err := json.MarshalIndent(vocab.Terms(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	for _, term := range vocab.Terms() {
		fmt.Fprintln(out, term)
	}
	return nil
}
