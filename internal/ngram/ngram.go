package ngram

import (
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of word characters: letters, digits and underscore.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Gram is an ordered run of consecutive tokens taken from a single line.
type Gram []string

// Key returns the table key for the gram. Tokens never contain spaces,
// so joining with a single space is reversible.
func (g Gram) Key() string {
	return strings.Join(g, " ")
}

func (g Gram) String() string {
	return g.Key()
}

// FromKey splits a table key back into its tokens.
func FromKey(key string) Gram {
	if key == "" {
		return nil
	}
	return Gram(strings.Split(key, " "))
}

// Tokenize lowercases text and returns its word tokens in order of appearance.
// Everything that is not a word character is a separator.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Generate returns the n-grams of text, sliding a window of width n over its
// tokens with stride 1. The result is empty when text has fewer than n tokens
// or n is not positive.
func Generate(text string, n int) []Gram {
	return Window(Tokenize(text), n)
}

// Window slides a window of width n over tokens. The returned grams share
// the backing array of tokens.
func Window(tokens []string, n int) []Gram {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]Gram, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, Gram(tokens[i:i+n:i+n]))
	}
	return grams
}
