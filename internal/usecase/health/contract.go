package health

import "context"

// DBPinger checks content store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the search index has been built.
type IndexChecker interface {
	Ready() bool
	EntryCount() int
}
