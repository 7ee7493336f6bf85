package analytics

import "context"

// Repository is the durable store behind the analytics service. Persistence
// failures are non-critical: callers log and continue.
type Repository interface {
	// Load restores previously persisted analytics state.
	Load(ctx context.Context) (State, error)
	// SaveHistory persists the bounded query history wholesale.
	SaveHistory(ctx context.Context, history []Event) error
	// IncrQueryCount bumps the popularity counter for one raw query.
	IncrQueryCount(ctx context.Context, query string) error
	// IncrRecordViews bumps the view counter for one content record.
	IncrRecordViews(ctx context.Context, id string) error
}

// State is the persisted analytics snapshot restored at startup.
type State struct {
	History    []Event
	Popularity map[string]int64
}
