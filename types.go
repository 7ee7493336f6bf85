package mythopedia

import (
	"github.com/mythopedia-cloud/mythopedia/internal/domain"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/request"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
)

// Public aliases for the domain types the SDK surface exchanges.
type (
	// Record is one encyclopedia content record as stored in Redis.
	Record = domain.ContentRecord
	// Attributes holds the structured attribute lists of a record.
	Attributes = domain.Attributes
	// RichContent holds the optional rich-content panels of a record.
	RichContent = domain.RichContent
	// Panel is one rich-content panel.
	Panel = domain.Panel

	// Result is one scored search hit.
	Result = result.Result
	// Response is the full reply for one search call.
	Response = result.Response
	// Filters restricts results to facet values.
	Filters = result.Filters
	// Facets lists the distinct filterable values in the index.
	Facets = result.Facets
	// Suggestion proposes a spelling correction for a query token.
	Suggestion = result.SpellingSuggestion
)

// Sort keys accepted by Query.Sort.
const (
	SortRelevance    = request.SortRelevance
	SortName         = request.SortName
	SortAlphabetical = request.SortAlphabetical
	SortDate         = request.SortDate
	SortNewest       = request.SortNewest
	SortPopular      = request.SortPopular
	SortVotes        = request.SortVotes
	SortViews        = request.SortViews
)
