package port

// Tokenizer segments a sentence into an ordered list of tokens.
// Implementations never return empty tokens.
type Tokenizer interface {
	Tokenize(sentence string) []string
}
