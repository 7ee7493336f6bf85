// Package analytics records search activity: a bounded query history,
// popularity counters, and a log of queries that found nothing. Recording is
// fire-and-forget; persistence failures never reach the search caller.
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is one completed search.
type Event struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
	Timestamp   time.Time `json:"timestamp"`
}

// QueryCount pairs a query with its popularity counter.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Config bounds the in-memory logs.
type Config struct {
	HistorySize   int
	NoResultsSize int
}

func (c Config) withDefaults() Config {
	if c.HistorySize <= 0 {
		c.HistorySize = 100
	}
	if c.NoResultsSize <= 0 {
		c.NoResultsSize = 50
	}
	return c
}

// Service keeps analytics state in memory and mirrors it to the repository.
// repo may be nil, in which case state is memory-only.
type Service struct {
	repo   Repository
	logger *zap.Logger
	cfg    Config

	mu         sync.Mutex
	history    []Event
	noResults  []Event
	popularity map[string]int64
}

// New creates an analytics service.
func New(repo Repository, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		cfg:        cfg.withDefaults(),
		popularity: make(map[string]int64),
	}
}

// Load restores persisted state. Called once at startup; a load failure is
// logged and the service starts empty.
func (s *Service) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	state, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("analytics state load failed, starting empty", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = trimTail(state.History, s.cfg.HistorySize)
	if state.Popularity != nil {
		s.popularity = state.Popularity
	}
}

// RecordQuery appends one completed search to the history, bumps its
// popularity counter, and notes zero-result queries separately. Persistence
// errors are logged, never returned.
func (s *Service) RecordQuery(ctx context.Context, query string, resultCount int) {
	ev := Event{Query: query, ResultCount: resultCount, Timestamp: time.Now()}

	s.mu.Lock()
	s.history = trimTail(append(s.history, ev), s.cfg.HistorySize)
	s.popularity[query]++
	if resultCount == 0 {
		s.noResults = trimTail(append(s.noResults, ev), s.cfg.NoResultsSize)
	}
	historyCopy := append([]Event(nil), s.history...)
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.IncrQueryCount(ctx, query); err != nil {
		s.logger.Warn("persist query count failed", zap.String("query", query), zap.Error(err))
	}
	if err := s.repo.SaveHistory(ctx, historyCopy); err != nil {
		s.logger.Warn("persist query history failed", zap.Error(err))
	}
}

// RecordView bumps the view counter for one record.
func (s *Service) RecordView(ctx context.Context, id string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.IncrRecordViews(ctx, id); err != nil {
		s.logger.Warn("persist record view failed", zap.String("id", id), zap.Error(err))
	}
}

// RecentQueries returns up to limit distinct queries, most recent first.
func (s *Service) RecentQueries(limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var out []string
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		q := s.history[i].Query
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// TopQueries returns up to limit queries by descending popularity.
func (s *Service) TopQueries(limit int) []QueryCount {
	s.mu.Lock()
	counts := make([]QueryCount, 0, len(s.popularity))
	for q, c := range s.popularity {
		counts = append(counts, QueryCount{Query: q, Count: c})
	}
	s.mu.Unlock()

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Query < counts[j].Query
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// NoResultQueries returns the recorded zero-result searches, oldest first.
func (s *Service) NoResultQueries() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.noResults...)
}

// trimTail keeps the newest max events.
func trimTail(events []Event, max int) []Event {
	if len(events) <= max {
		return events
	}
	return events[len(events)-max:]
}
