package mythopedia

import (
	"context"
	"fmt"

	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/request"
)

// Query is a fluent builder for one search call.
type Query struct {
	client  *Client
	query   string
	filters Filters
	sortBy  string
	limit   int
}

// Query starts a search for the given text.
func (c *Client) Query(text string) *Query {
	return &Query{client: c, query: text}
}

// Mythology restricts results to one or more mythologies.
func (q *Query) Mythology(names ...string) *Query {
	q.filters.Mythologies = append(q.filters.Mythologies, names...)
	return q
}

// Type restricts results to content types (deity, creature, place, ...).
func (q *Query) Type(types ...string) *Query {
	q.filters.ContentTypes = append(q.filters.ContentTypes, types...)
	return q
}

// Domain restricts results to records with the given attribute domains.
func (q *Query) Domain(domains ...string) *Query {
	q.filters.Domains = append(q.filters.Domains, domains...)
	return q
}

// Tag restricts results to records carrying the given tags.
func (q *Query) Tag(tags ...string) *Query {
	q.filters.Tags = append(q.filters.Tags, tags...)
	return q
}

// Sort sets the sort key (SortRelevance by default).
func (q *Query) Sort(key string) *Query {
	q.sortBy = key
	return q
}

// Limit caps the number of returned results.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Do executes the search.
func (q *Query) Do(ctx context.Context) (Response, error) {
	req := request.New(q.query, q.filters, q.sortBy, q.limit)
	resp, err := q.client.search.Search(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}
	return resp, nil
}

// Autocomplete returns title and history completions for a prefix.
func (c *Client) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	suggestions, err := c.search.Autocomplete(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return suggestions, nil
}

// Suggestions proposes spelling corrections for a probably-misspelled query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]Suggestion, error) {
	suggestions, err := c.search.SpellingSuggestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return suggestions, nil
}

// Facets returns the distinct filterable values in the index.
func (c *Client) Facets(ctx context.Context) (Facets, error) {
	facets, err := c.search.Facets(ctx)
	if err != nil {
		return Facets{}, fmt.Errorf("facets: %w", err)
	}
	return facets, nil
}
