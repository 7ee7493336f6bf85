package search

import (
	"strings"

	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/entry"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/fuzzy"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/query"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
)

// Clause weights. Exact phrases outrank field equality, which outranks
// wildcard prefix hits; within a term, title beats subtitle beats summary
// beats a bare token hit. Fuzzy contributions top out at 2.0 so no typo
// match can drown out an exact signal.
const (
	phraseWeight    = 10
	fieldWeight     = 8
	wildcardWeight  = 5
	titleWeight     = 10
	subtitleWeight  = 8
	summaryWeight   = 5
	tokenWeight     = 3
	fuzzyMultiplier = 2
)

// execute scores every entry against the parsed query and returns the raw
// (unfiltered, unsorted) hits. Entries are visited in index order so equal
// scores keep a stable tie order.
func execute(entries []entry.Entry, q query.Query, fuzzyThreshold float64) []result.Result {
	var results []result.Result
	for _, e := range entries {
		score, matches, ok := scoreEntry(e, q, fuzzyThreshold)
		if !ok || score <= 0 || len(matches) == 0 {
			continue
		}
		results = append(results, result.Result{Entry: e, Score: score, Matches: matches})
	}
	return results
}

// scoreEntry evaluates each clause group additively. AND, OR, and NOT act as
// hard gates: a failed gate excludes the entry outright, discarding any
// bonuses already accumulated.
func scoreEntry(e entry.Entry, q query.Query, fuzzyThreshold float64) (float64, []result.Match, bool) {
	var score float64
	var matches []result.Match

	for _, phrase := range q.ExactPhrases {
		if strings.Contains(e.SearchableText, phrase) {
			score += phraseWeight
			matches = append(matches, result.Match{Kind: result.KindExact, Term: phrase, Score: phraseWeight})
		}
	}

	for field, values := range q.FieldSpecific {
		for _, v := range values {
			fv, ok := e.FieldValue(field)
			if ok && strings.ToLower(fv) == v {
				score += fieldWeight
				matches = append(matches, result.Match{
					Kind: result.KindField, Term: v, Field: field, Score: fieldWeight,
				})
			}
		}
	}

	for _, prefix := range q.Wildcards {
		for _, tok := range e.Tokens {
			if strings.HasPrefix(tok, prefix) {
				score += wildcardWeight
				matches = append(matches, result.Match{
					Kind: result.KindWildcard, Term: tok, Score: wildcardWeight,
				})
			}
		}
	}

	if len(q.And) > 0 {
		satisfied := 0
		for _, term := range q.And {
			ts := matchTerm(term, e, fuzzyThreshold)
			if ts > 0 {
				satisfied++
				score += ts
				matches = append(matches, result.Match{Kind: result.KindAnd, Term: term, Score: ts})
			}
		}
		if satisfied < len(q.And) {
			return 0, nil, false
		}
	}

	if len(q.Or) > 0 {
		anyMatched := false
		for _, term := range q.Or {
			ts := matchTerm(term, e, fuzzyThreshold)
			if ts > 0 {
				anyMatched = true
				score += ts
				matches = append(matches, result.Match{Kind: result.KindOr, Term: term, Score: ts})
			}
		}
		if !anyMatched {
			return 0, nil, false
		}
	}

	for _, term := range q.Not {
		if strings.Contains(e.SearchableText, term) {
			return 0, nil, false
		}
	}

	// Fallback for queries whose terms were not promoted to an operator
	// group (pure phrase/field/wildcard queries that still carried terms).
	if len(q.And) == 0 && len(q.Or) == 0 && len(q.Terms) > 0 {
		for _, term := range q.Terms {
			ts := matchTerm(term, e, fuzzyThreshold)
			if ts > 0 {
				score += ts
				matches = append(matches, result.Match{Kind: result.KindRegular, Term: term, Score: ts})
			}
		}
	}

	return score, matches, true
}

// matchTerm scores one term against one entry at every granularity. The
// fuzzy net only opens when the term produced zero exact signal.
func matchTerm(term string, e entry.Entry, fuzzyThreshold float64) float64 {
	var score float64

	if strings.Contains(strings.ToLower(e.Title), term) {
		score += titleWeight
	}
	if e.Subtitle != "" && strings.Contains(strings.ToLower(e.Subtitle), term) {
		score += subtitleWeight
	}
	if e.Summary != "" && strings.Contains(strings.ToLower(e.Summary), term) {
		score += summaryWeight
	}
	for _, tok := range e.Tokens {
		if tok == term {
			score += tokenWeight
			break
		}
	}

	if score == 0 {
		for _, tok := range e.Tokens {
			if sim := fuzzy.Similarity(term, tok); sim >= fuzzyThreshold {
				score += sim * fuzzyMultiplier
			}
		}
	}

	return score
}
