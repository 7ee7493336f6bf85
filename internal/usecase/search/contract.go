package search

import (
	"context"

	"github.com/mythopedia-cloud/mythopedia/internal/domain"
)

// RecordSource lists content records for index builds.
type RecordSource interface {
	List(ctx context.Context) ([]domain.ContentRecord, error)
}

// Analytics receives completed searches and serves the recent-query history
// used by autocomplete. Implementations swallow their own failures; recording
// must never fail a search.
type Analytics interface {
	RecordQuery(ctx context.Context, query string, resultCount int)
	RecentQueries(limit int) []string
}
