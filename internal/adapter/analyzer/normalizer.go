package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Delimiter replaces every rejected rune and separates sentences after cleaning.
const Delimiter = ','

var urlPattern = regexp.MustCompile(`http\S+|www\S+|https\S+`)

// Clean strips URLs, replaces every rune that is not an ASCII letter, ASCII
// digit, CJK ideograph or whitespace with Delimiter, and trims the result.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return Delimiter
	}, text)
	return strings.TrimSpace(text)
}

// CleanWidth folds full-width and compatibility forms with NFKC before
// cleaning, so "ｈｅｌｌｏ，世界" cleans like "hello,世界".
func CleanWidth(text string) string {
	return Clean(norm.NFKC.String(text))
}

// SplitSentences splits cleaned text on Delimiter and keeps the non-empty
// fragments in order.
func SplitSentences(cleaned string) []string {
	parts := strings.Split(cleaned, string(Delimiter))
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x4e00 && r <= 0x9fa5:
		return true
	}
	return unicode.IsSpace(r)
}
