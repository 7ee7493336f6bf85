// Package fuzzy provides edit-distance matching for typo-tolerant search.
// It is designed for single-word tokens; callers tokenize before matching.
package fuzzy

import "unicode/utf8"

// Distance returns the Levenshtein edit distance between a and b, where
// insertions, deletions, and substitutions all cost 1.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two-row DP over a (len(b)+1) x (len(a)+1) table.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

// Similarity returns a normalized score in [0,1]: identical strings score 1.0,
// strings with no characters in common score 0. Two empty strings score 1.0.
// Symmetric in its arguments.
func Similarity(a, b string) float64 {
	// Normalize by rune count, matching the units Distance works in.
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Distance(a, b)) / float64(longest)
}
