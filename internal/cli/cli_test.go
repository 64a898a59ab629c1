package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textlab/internal/model/ngram"
	"textlab/internal/model/tfidf"
)

// resetFlags restores every flag to its default so state from one Execute
// does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TEXTLAB_TOKENIZER", "whitespace")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err)
	return out
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestVocabCommand(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "hello world\n", "b.txt": "Hello there\n"})

	out := run(t, "--dir", dir, "--no-cache", "vocab", dir, "--json")

	var terms []string
	require.NoError(t, json.Unmarshal([]byte(out), &terms))
	assert.Equal(t, []string{"hello", "there", "world"}, terms)
}

func TestKeywordsCommand(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "hello world\n",
		"b.txt": "hello there\n",
		"stop":  "there\n",
	})

	out := run(t, "--dir", dir, "--no-cache", "keywords", dir, "-k", "1", "--json")
	var res []DocumentKeywords
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), res[0].Path)
	assert.Equal(t, -1, res[0].Sentence)
	assert.Equal(t, []tfidf.Keyword{{Term: "world", Score: tfidf.IDF(2, 1)}}, res[0].Keywords)
	assert.Equal(t, "there", res[1].Keywords[0].Term)

	out = run(t, "--dir", dir, "--no-cache", "keywords", dir, "-k", "1", "--json",
		"--stopwords", filepath.Join(dir, "stop"))
	res = nil
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "hello", res[1].Keywords[0].Term)
}

func TestKeywordsCommand_SentenceUnit(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "red fish, blue fish\n"})

	out := run(t, "--dir", dir, "--no-cache", "keywords", dir, "--unit", "sentence", "-k", "1", "--json")
	var res []DocumentKeywords
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Sentence)
	assert.Equal(t, 1, res[1].Sentence)
	assert.Equal(t, "red", res[0].Keywords[0].Term)
	assert.Equal(t, "blue", res[1].Keywords[0].Term)
}

func TestNGramCommand(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "a b a c\n"})

	out := run(t, "--dir", dir, "--no-cache", "ngram", dir,
		"--context", "A", "--word", "b", "--top", "2", "--json")

	var res NGramResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Order)
	assert.Equal(t, []string{"a"}, res.Context)
	assert.True(t, res.Found)
	assert.Equal(t, "b", res.Next)
	require.NotNil(t, res.Probability)
	assert.InDelta(t, 2.0/5.0, *res.Probability, 1e-6)
	assert.Len(t, res.Top, 2)
}

func TestNGramCommand_UnseenContext(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "a b\n"})

	out := run(t, "--dir", dir, "--no-cache", "ngram", dir, "--context", "zzz")
	assert.Contains(t, out, "unseen context")
}

func TestCacheCommands(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "hello world\n"})

	out := run(t, "--dir", dir, "cache", "stats")
	assert.Contains(t, out, "no token cache")

	run(t, "--dir", dir, "vocab", dir)
	out = run(t, "--dir", dir, "cache", "stats")
	assert.Contains(t, out, "Sources:   1")
	assert.Contains(t, out, "Tokens:    2")

	out = run(t, "--dir", dir, "cache", "clear")
	assert.Contains(t, out, "cleared")
	out = run(t, "--dir", dir, "cache", "stats")
	assert.Contains(t, out, "Sources:   0")
}

func TestKeywordsCommand_RejectsNonPositiveTopK(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "hello world\n"})

	for _, k := range []string{"0", "-1"} {
		_, err := execute(t, "--dir", dir, "--no-cache", "keywords", dir, "-k", k)
		require.Error(t, err, "-k %s", k)
		assert.Contains(t, err.Error(), "--top-k")
	}
}

func TestNGramCommand_RejectsInvalidOrder(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"a.txt": "a b\n"})

	for _, n := range []string{"0", "-1"} {
		_, err := execute(t, "--dir", dir, "--no-cache", "ngram", dir, "-n", n)
		assert.ErrorIs(t, err, ngram.ErrInvalidOrder, "-n %s", n)
	}

	// Without -n the configured order applies.
	out := run(t, "--dir", dir, "--no-cache", "ngram", dir, "--context", "a", "--json")
	assert.Contains(t, out, `"order": 2`)
}
