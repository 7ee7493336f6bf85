// Package result defines the scored search hit and response shapes.
package result

import (
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/entry"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/query"
)

// MatchKind tags how a clause of the query matched an entry.
type MatchKind string

const (
	// KindExact marks an exact-phrase substring match.
	KindExact MatchKind = "exact"
	// KindField marks a field-scoped equality match.
	KindField MatchKind = "field"
	// KindWildcard marks a token prefix match.
	KindWildcard MatchKind = "wildcard"
	// KindAnd marks a satisfied AND-group term.
	KindAnd MatchKind = "and"
	// KindOr marks a satisfied OR-group term.
	KindOr MatchKind = "or"
	// KindRegular marks a plain fallback term match.
	KindRegular MatchKind = "regular"
)

// Match explains one scoring contribution.
type Match struct {
	Kind  MatchKind `json:"kind"`
	Term  string    `json:"term"`
	Field string    `json:"field,omitempty"`
	Score float64   `json:"score"`
}

// Result is one matched entry with its score and match explanations.
// Emitted only when Score > 0 and Matches is non-empty.
type Result struct {
	entry.Entry

	Score   float64 `json:"searchScore"`
	Matches []Match `json:"matches"`

	HighlightedTitle    string `json:"highlightedTitle,omitempty"`
	HighlightedSubtitle string `json:"highlightedSubtitle,omitempty"`
	HighlightedSummary  string `json:"highlightedSummary,omitempty"`
}

// Filters narrows results along the discrete facet dimensions. Facets compose
// with logical AND; an empty facet is a pass-through.
type Filters struct {
	Mythologies  []string `json:"mythologies,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
	Domains      []string `json:"domains,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// IsEmpty reports whether no facet is set.
func (f Filters) IsEmpty() bool {
	return len(f.Mythologies) == 0 && len(f.ContentTypes) == 0 &&
		len(f.Domains) == 0 && len(f.Tags) == 0
}

// Response is the full reply for one search call. TotalResults reflects the
// matched-and-filtered count before limit truncation.
type Response struct {
	Results      []Result    `json:"results"`
	TotalResults int         `json:"totalResults"`
	SearchTimeMS float64     `json:"searchTime"`
	Query        query.Query `json:"-"`
	Filters      Filters     `json:"filters,omitempty"`
}

// Facets lists the distinct filterable values harvested from the full index.
type Facets struct {
	Mythologies  []string `json:"mythologies"`
	ContentTypes []string `json:"contentTypes"`
	Domains      []string `json:"domains"`
	Tags         []string `json:"tags"`
}

// SpellingSuggestion proposes a close index token for a probably-misspelled
// query token.
type SpellingSuggestion struct {
	Original   string  `json:"original"`
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}
