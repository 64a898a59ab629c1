package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"textlab/internal/model/ngram"
)

var (
	ngramOrder   int
	ngramContext string
	ngramWord    string
	ngramTop     int
	ngramJSON    bool
)

var ngramCmd = &cobra.Command{
	Use:   "ngram <source>...",
	Short: "Train an n-gram model and predict the next word",
	Long: `Train an add-one smoothed n-gram model over the given corpora. The
context is cleaned and tokenized like the corpus and only its last n-1
tokens are used.

Examples:
  textlab ngram corpus/ --context "心理 咨询"
  textlab ngram corpus/ -n 3 --context "the cat" --word sat
  textlab ngram corpus/ --context "the" --top 5 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNGram,
}

func init() {
	rootCmd.AddCommand(ngramCmd)
	ngramCmd.Flags().IntVarP(&ngramOrder, "order", "n", 0, "n-gram order (default from config)")
	ngramCmd.Flags().StringVar(&ngramContext, "context", "", "context text to predict from")
	ngramCmd.Flags().StringVar(&ngramWord, "word", "", "print the probability of this word after the context")
	ngramCmd.Flags().IntVar(&ngramTop, "top", 0, "list the k most frequent continuations")
	ngramCmd.Flags().BoolVar(&ngramJSON, "json", false, "output as JSON")
}

// NGramResult is the JSON output of the ngram command.
type NGramResult struct {
	Order       int               `json:"order"`
	Context     []string          `json:"context"`
	Contexts    int               `json:"contexts"`
	Vocabulary  int               `json:"vocabulary"`
	Next        string            `json:"next,omitempty"`
	Found       bool              `json:"found"`
	Word        string            `json:"word,omitempty"`
	Probability *float64          `json:"probability,omitempty"`
	Top         []ngram.WordCount `json:"top,omitempty"`
}

func runNGram(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	order := cfg.NGram.Order
	if cmd.Flags().Changed("order") {
		order = ngramOrder
	}

	s, err := openSession(args, cmd.ErrOrStderr(), ngramJSON)
	if err != nil {
		return err
	}
	defer s.Close()

	model, err := s.pipeline.TrainNGram(s.sources, order)
	if err != nil {
		return err
	}
	logger.Info("ngram trained", "order", order, "contexts", model.ContextCount(), "vocabulary", model.VocabSize())

	context, err := s.pipeline.TokenizeText(ngramContext)
	if err != nil {
		return fmt.Errorf("failed to tokenize context: %w", err)
	}

	res := NGramResult{
		Order:      order,
		Context:    context,
		Contexts:   model.ContextCount(),
		Vocabulary: model.VocabSize(),
	}
	res.Next, res.Found = model.PredictNextWord(context)

	if ngramWord != "" {
		words, err := s.pipeline.TokenizeText(ngramWord)
		if err != nil {
			return fmt.Errorf("failed to tokenize word: %w", err)
		}
		if len(words) != 1 {
			return fmt.Errorf("--word must be a single token, got %d", len(words))
		}
		p := model.Probability(words[0], context)
		res.Word = words[0]
		res.Probability = &p
	}
	if ngramTop > 0 {
		res.Top = model.TopNextWords(context, ngramTop)
	}

	out := cmd.OutOrStdout()
	if ngramJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d-gram", order)),
		dimStyle.Render(fmt.Sprintf("(%d contexts, %d words)", res.Contexts, res.Vocabulary)))
	if res.Found {
		fmt.Fprintf(out, "next: %s\n", termStyle.Render(res.Next))
	} else {
		fmt.Fprintln(out, dimStyle.Render("next: <unseen context>"))
	}
	if res.Probability != nil {
		fmt.Fprintf(out, "P(%s | context) = %.6f\n", res.Word, *res.Probability)
	}
	for _, wc := range res.Top {
		fmt.Fprintf(out, "  %s %s\n", termStyle.Render(wc.Word), dimStyle.Render(fmt.Sprintf("%d", wc.Count)))
	}
	return nil
}
