package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"textlab/internal/adapter/analyzer"
	"textlab/internal/domain"
)

// ErrInvalidEncoding is returned when a source is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid utf-8")

const maxLineBytes = 16 << 20

// Loader turns text sources into cleaned sentences.
type Loader struct {
	// Lowercase folds every sentence to lower case.
	Lowercase bool
	// FoldWidth applies NFKC before cleaning.
	FoldWidth bool
}

// Load reads the file at path.
func (l Loader) Load(path string) (domain.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	c, err := l.LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadReader reads r line by line, cleans every line and splits it into
// sentences. Line order and fragment order are preserved.
func (l Loader) LoadReader(r io.Reader) (domain.Corpus, error) {
	var c domain.Corpus

	clean := analyzer.Clean
	if l.FoldWidth {
		clean = analyzer.CleanWidth
	}

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scan.Scan() {
		lineNo++
		line := scan.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
		}
		for _, sentence := range analyzer.SplitSentences(clean(line)) {
			if l.Lowercase {
				sentence = strings.ToLower(sentence)
			}
			c = append(c, sentence)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return c, nil
}

// LoadStopwords reads one stopword per line. Entries are trimmed and blank
// lines are ignored.
func LoadStopwords(path string) (analyzer.StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopwords: %w", err)
	}
	defer f.Close()

	set := analyzer.NewStopwordSet()
	scan := bufio.NewScanner(f)
	lineNo := 0
	for scan.Scan() {
		lineNo++
		line := scan.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%s: line %d: %w", path, lineNo, ErrInvalidEncoding)
		}
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords %s: %w", path, err)
	}
	return set, nil
}
