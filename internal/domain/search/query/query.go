// Package query parses raw search input into a structured query.
//
// Grammar, informally: double-quoted spans are exact phrases, field:value
// pairs scope a term to one field, NOT word excludes, word* is a prefix
// wildcard, and bare terms combine with explicit AND/OR keywords or default
// to an implicit AND of all terms.
package query

import (
	"regexp"
	"strings"
)

// Query is the structured form of one raw search string. Immutable once built.
type Query struct {
	Original      string
	Terms         []string
	ExactPhrases  []string
	Wildcards     []string
	FieldSpecific map[string][]string
	And           []string
	Or            []string
	Not           []string
}

var (
	phraseRe   = regexp.MustCompile(`"(.*?)"`)
	fieldRe    = regexp.MustCompile(`(\w+):(\w+)`)
	notRe      = regexp.MustCompile(`(?i)NOT\s+(\w+)`)
	wildcardRe = regexp.MustCompile(`(\w+)\*`)
)

// Parse builds a Query from raw input. Pure and deterministic; each
// extraction step strips its matched spans from the working string so later
// steps never see consumed text. Malformed input (unbalanced quotes, dangling
// operators) never errors; unmatched constructs simply fall through as terms.
func Parse(raw string) Query {
	q := Query{
		Original:      raw,
		FieldSpecific: make(map[string][]string),
	}
	working := raw

	// 1. Exact phrases: "..."
	for _, m := range phraseRe.FindAllStringSubmatch(working, -1) {
		q.ExactPhrases = append(q.ExactPhrases, strings.ToLower(m[1]))
	}
	working = phraseRe.ReplaceAllString(working, "")

	// 2. Field-specific terms: field:value
	for _, m := range fieldRe.FindAllStringSubmatch(working, -1) {
		field := strings.ToLower(m[1])
		q.FieldSpecific[field] = append(q.FieldSpecific[field], strings.ToLower(m[2]))
	}
	working = fieldRe.ReplaceAllString(working, "")

	// 3. NOT terms
	for _, m := range notRe.FindAllStringSubmatch(working, -1) {
		q.Not = append(q.Not, strings.ToLower(m[1]))
	}
	working = notRe.ReplaceAllString(working, "")

	// 4. Wildcards: prefix*
	for _, m := range wildcardRe.FindAllStringSubmatch(working, -1) {
		q.Wildcards = append(q.Wildcards, strings.ToLower(m[1]))
	}
	working = wildcardRe.ReplaceAllString(working, "")

	// 5. Residual terms with positional AND/OR handling. A term adjacent to
	// an operator keyword lands in both the operator group and Terms; the
	// duplication is inert under the default rule below and is kept to match
	// the original engine's behavior.
	rawTerms := strings.Fields(working)
	for i, t := range rawTerms {
		switch strings.ToUpper(t) {
		case "OR":
			if i > 0 {
				q.Or = append(q.Or, strings.ToLower(rawTerms[i-1]))
			}
			if i < len(rawTerms)-1 {
				q.Or = append(q.Or, strings.ToLower(rawTerms[i+1]))
			}
		case "AND":
			if i > 0 {
				q.And = append(q.And, strings.ToLower(rawTerms[i-1]))
			}
			if i < len(rawTerms)-1 {
				q.And = append(q.And, strings.ToLower(rawTerms[i+1]))
			}
		case "NOT":
			// Operator keyword, never a term.
		default:
			q.Terms = append(q.Terms, strings.ToLower(t))
		}
	}

	// 6. Plain queries behave as an implicit AND of all terms.
	if len(q.And) == 0 && len(q.Or) == 0 && len(q.Terms) > 0 {
		q.And = append([]string(nil), q.Terms...)
	}

	return q
}

// IsEmpty reports whether the query has no matchable clauses at all.
func (q Query) IsEmpty() bool {
	return len(q.Terms) == 0 && len(q.ExactPhrases) == 0 && len(q.Wildcards) == 0 &&
		len(q.FieldSpecific) == 0 && len(q.And) == 0 && len(q.Or) == 0 && len(q.Not) == 0
}

// HighlightTerms returns every term that should be wrapped by the result
// highlighter: free terms, exact phrases, and AND/OR operands, deduplicated
// in first-seen order.
func (q Query) HighlightTerms() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{q.Terms, q.ExactPhrases, q.And, q.Or} {
		for _, t := range group {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
