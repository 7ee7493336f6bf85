// Package token normalizes free text into searchable word tokens.
package token

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize lowercases the input, turns punctuation into separators, splits on
// whitespace, and drops tokens of length <= 1. Empty input yields nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if len(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
