package search

import (
	"regexp"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/query"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/request"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
)

// applyFilters keeps results whose facet values intersect every non-empty
// facet of the filter. Facets compose with logical AND.
func applyFilters(results []result.Result, f result.Filters) []result.Result {
	if f.IsEmpty() {
		return results
	}
	filtered := results[:0]
	for _, r := range results {
		if len(f.Mythologies) > 0 && !contains(f.Mythologies, r.Mythology) {
			continue
		}
		if len(f.ContentTypes) > 0 && !contains(f.ContentTypes, r.ContentType) {
			continue
		}
		if len(f.Domains) > 0 && !intersects(f.Domains, r.Attributes.Domains) {
			continue
		}
		if len(f.Tags) > 0 && !intersects(f.Tags, r.Tags) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// sortResults orders results by the requested key. The sort is stable so
// ties keep index order. An unknown key preserves input order.
func sortResults(results []result.Result, sortBy string) {
	switch sortBy {
	case request.SortRelevance:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	case request.SortName, request.SortAlphabetical:
		// A Collator is not safe for concurrent use, so build one per sort.
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(results, func(i, j int) bool {
			return c.CompareString(results[i].Title, results[j].Title) < 0
		})
	case request.SortDate, request.SortNewest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	case request.SortPopular, request.SortVotes:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Votes > results[j].Votes
		})
	case request.SortViews:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Views > results[j].Views
		})
	}
}

// highlight wraps every case-insensitive occurrence of every query term in
// the configured tag across title, subtitle, and summary. Terms are
// regex-escaped before the pattern is built; terms are processed
// independently, so a later term may match inside an earlier term's inserted
// markup. That is an accepted limitation of the original engine.
func highlight(r *result.Result, q query.Query, tag string) {
	terms := q.HighlightTerms()
	if len(terms) == 0 {
		return
	}
	r.HighlightedTitle = highlightText(r.Title, terms, tag)
	r.HighlightedSubtitle = highlightText(r.Subtitle, terms, tag)
	r.HighlightedSummary = highlightText(r.Summary, terms, tag)
}

func highlightText(text string, terms []string, tag string) string {
	if text == "" {
		return ""
	}
	for _, term := range terms {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
		text = re.ReplaceAllString(text, "<"+tag+">$0</"+tag+">")
	}
	return text
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func intersects(filter, values []string) bool {
	for _, f := range filter {
		if contains(values, f) {
			return true
		}
	}
	return false
}
