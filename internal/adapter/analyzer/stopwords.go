package analyzer

// StopwordSet is a set of tokens to drop. Matching is exact.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether token is a stopword.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// RemoveStopwords returns tokens without stopwords, keeping order.
func RemoveStopwords(tokens []string, stopwords StopwordSet) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if stopwords.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RemoveStopwordsDocs applies RemoveStopwords to every document.
func RemoveStopwordsDocs(docs [][]string, stopwords StopwordSet) [][]string {
	out := make([][]string, len(docs))
	for i, doc := range docs {
		out[i] = RemoveStopwords(doc, stopwords)
	}
	return out
}
