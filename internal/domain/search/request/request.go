// Package request models one inbound search call.
package request

import (
	"strconv"
	"strings"

	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
)

// Sort keys accepted by the post-processor. An unknown key preserves input
// order; relevance is the default.
const (
	SortRelevance    = "relevance"
	SortName         = "name"
	SortAlphabetical = "alphabetical"
	SortDate         = "date"
	SortNewest       = "newest"
	SortPopular      = "popular"
	SortVotes        = "votes"
	SortViews        = "views"
)

// Request is one search call: the raw query plus options. Zero values mean
// engine defaults (relevance sort, configured result limit).
type Request struct {
	query   string
	filters result.Filters
	sortBy  string
	limit   int
}

// New creates a Request. The query is trimmed; a non-positive limit defers to
// the engine's configured maximum.
func New(query string, filters result.Filters, sortBy string, limit int) Request {
	if sortBy == "" {
		sortBy = SortRelevance
	}
	if limit < 0 {
		limit = 0
	}
	return Request{
		query:   strings.TrimSpace(query),
		filters: filters,
		sortBy:  sortBy,
		limit:   limit,
	}
}

// Query returns the trimmed raw query string.
func (r Request) Query() string { return r.query }

// Filters returns the facet filters.
func (r Request) Filters() result.Filters { return r.filters }

// SortBy returns the sort key.
func (r Request) SortBy() string { return r.sortBy }

// Limit returns the requested result limit (0 = engine default).
func (r Request) Limit() int { return r.limit }

// CacheKey returns a stable key identifying this request for the response
// cache. Two requests with the same key compute the same answer against the
// same index snapshot.
func (r Request) CacheKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.query))
	b.WriteByte('|')
	b.WriteString(r.sortBy)
	b.WriteByte('|')
	for _, group := range [][]string{
		r.filters.Mythologies, r.filters.ContentTypes, r.filters.Domains, r.filters.Tags,
	} {
		b.WriteString(strings.Join(group, ","))
		b.WriteByte(';')
	}
	if r.limit > 0 {
		b.WriteString("limit=")
		b.WriteString(strconv.Itoa(r.limit))
	}
	return b.String()
}
