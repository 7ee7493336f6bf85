// Package search implements the in-memory full-text search engine: index
// lifecycle, query execution, result post-processing, response caching, and
// the autocomplete/spelling/facets surface.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mythopedia-cloud/mythopedia/internal/domain"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/entry"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/fuzzy"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/query"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/request"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/result"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/token"
	"github.com/mythopedia-cloud/mythopedia/internal/metrics"
)

// Config holds the engine's tunables. Zero values defer to defaults.
type Config struct {
	MinQueryLength     int
	FuzzyThreshold     float64
	MaxResults         int
	HighlightTag       string
	AutocompleteLimit  int
	SuggestionMinScore float64
	CacheTTL           time.Duration
	CacheSize          int
}

func (c Config) withDefaults() Config {
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = 2
	}
	if c.FuzzyThreshold <= 0 {
		c.FuzzyThreshold = 0.7
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 100
	}
	if c.HighlightTag == "" {
		c.HighlightTag = "mark"
	}
	if c.AutocompleteLimit <= 0 {
		c.AutocompleteLimit = 10
	}
	if c.SuggestionMinScore <= 0 {
		c.SuggestionMinScore = 0.75
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 256
	}
	return c
}

// snapshot is one immutable build of the index. Queries read whichever
// snapshot is current; rebuilds swap the pointer whole, so in-flight queries
// against the old snapshot are unaffected.
type snapshot struct {
	entries []entry.Entry
	byID    map[string]entry.Entry
	vocab   []string
	facets  result.Facets
	builtAt time.Time
}

// Service is the search engine. Construct once and share; all methods are
// safe for concurrent use.
type Service struct {
	source    RecordSource
	analytics Analytics
	logger    *zap.Logger
	cfg       Config
	cache     *responseCache

	idx       atomic.Pointer[snapshot]
	rebuildMu sync.Mutex
}

// New creates a search service. analytics may be nil.
func New(source RecordSource, analytics Analytics, logger *zap.Logger, cfg Config) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		source:    source,
		analytics: analytics,
		logger:    logger,
		cfg:       cfg,
		cache:     newResponseCache(cfg.CacheTTL, cfg.CacheSize),
	}
}

// Init builds the index if it has not been built yet. Idempotent; repeated
// calls after a successful build are no-ops.
func (s *Service) Init(ctx context.Context) error {
	if s.idx.Load() != nil {
		return nil
	}
	return s.Rebuild(ctx)
}

// Rebuild reads every record from the content store and replaces the index
// wholesale. Rebuilds are serialized; on failure the previous snapshot stays
// in place and the error propagates to the caller.
func (s *Service) Rebuild(ctx context.Context) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	records, err := s.source.List(ctx)
	if err != nil {
		metrics.ObserveRebuild(false, time.Since(start))
		return fmt.Errorf("list content records: %w", err)
	}

	snap := buildSnapshot(records)
	s.idx.Store(snap)
	s.cache.clear()

	metrics.ObserveRebuild(true, time.Since(start))
	metrics.SetIndexEntries(len(snap.entries))
	s.logger.Info("search index rebuilt",
		zap.Int("entries", len(snap.entries)),
		zap.Int("vocabulary", len(snap.vocab)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Ready reports whether an index snapshot is available.
func (s *Service) Ready() bool { return s.idx.Load() != nil }

// EntryCount returns the number of indexed entries (0 before the first build).
func (s *Service) EntryCount() int {
	if snap := s.idx.Load(); snap != nil {
		return len(snap.entries)
	}
	return 0
}

// Search runs one query. Queries shorter than the configured minimum return
// an empty response immediately without touching the index or cache. The
// first call builds the index on demand; thereafter everything is an
// in-memory scoring pass.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Response, error) {
	q := req.Query()
	if len(q) < s.cfg.MinQueryLength {
		return result.Response{Results: []result.Result{}, Filters: req.Filters()}, nil
	}

	snap, err := s.ensureReady(ctx)
	if err != nil {
		return result.Response{}, err
	}

	key := req.CacheKey()
	if resp, ok := s.cache.get(key); ok {
		metrics.ObserveSearch(true, len(resp.Results) == 0, 0)
		s.record(ctx, q, resp.TotalResults)
		return resp, nil
	}

	start := time.Now()
	parsed := query.Parse(q)

	results := execute(snap.entries, parsed, s.cfg.FuzzyThreshold)
	results = applyFilters(results, req.Filters())
	sortResults(results, req.SortBy())

	total := len(results)
	limit := req.Limit()
	if limit <= 0 || limit > s.cfg.MaxResults {
		limit = s.cfg.MaxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		highlight(&results[i], parsed, s.cfg.HighlightTag)
	}
	if results == nil {
		results = []result.Result{}
	}

	took := time.Since(start)
	resp := result.Response{
		Results:      results,
		TotalResults: total,
		SearchTimeMS: float64(took.Microseconds()) / 1000.0,
		Query:        parsed,
		Filters:      req.Filters(),
	}

	s.cache.set(key, resp)
	metrics.ObserveSearch(false, total == 0, took)
	s.record(ctx, q, total)

	return resp, nil
}

// Autocomplete returns up to limit suggestions: distinct indexed titles
// containing the input plus matching queries from the recent history.
// Inputs shorter than 2 characters return nothing.
func (s *Service) Autocomplete(ctx context.Context, q string, limit int) ([]string, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.AutocompleteLimit
	}

	snap, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(q)
	seen := make(map[string]struct{})
	suggestions := make([]string, 0, limit)

	add := func(s string) {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, s)
	}

	for _, e := range snap.entries {
		if len(suggestions) >= limit {
			break
		}
		if e.Title != "" && strings.Contains(strings.ToLower(e.Title), lower) {
			add(e.Title)
		}
	}

	if s.analytics != nil {
		for _, h := range s.analytics.RecentQueries(limit) {
			if len(suggestions) >= limit {
				break
			}
			if strings.Contains(strings.ToLower(h), lower) {
				add(h)
			}
		}
	}

	return suggestions, nil
}

// SpellingSuggestions proposes, per query token, the closest distinct index
// token at or above the suggestion threshold. Identical tokens are excluded.
func (s *Service) SpellingSuggestions(ctx context.Context, q string) ([]result.SpellingSuggestion, error) {
	snap, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []result.SpellingSuggestion
	for _, tok := range token.Tokenize(q) {
		best := ""
		bestSim := 0.0
		for _, candidate := range snap.vocab {
			sim := fuzzy.Similarity(tok, candidate)
			// Identical tokens need no correction.
			if sim >= 1.0 {
				continue
			}
			if sim > bestSim {
				best, bestSim = candidate, sim
			}
		}
		if best != "" && bestSim >= s.cfg.SuggestionMinScore {
			suggestions = append(suggestions, result.SpellingSuggestion{
				Original:   tok,
				Suggestion: best,
				Confidence: bestSim,
			})
		}
	}
	return suggestions, nil
}

// Facets returns the distinct filterable values harvested from the index.
func (s *Service) Facets(ctx context.Context) (result.Facets, error) {
	snap, err := s.ensureReady(ctx)
	if err != nil {
		return result.Facets{}, err
	}
	return snap.facets, nil
}

// Entry returns one indexed entry by record id.
func (s *Service) Entry(id string) (entry.Entry, error) {
	snap := s.idx.Load()
	if snap == nil {
		return entry.Entry{}, domain.ErrIndexNotReady
	}
	e, ok := snap.byID[id]
	if !ok {
		return entry.Entry{}, domain.ErrRecordNotFound
	}
	return e, nil
}

// ensureReady returns the current snapshot, building it on first use.
func (s *Service) ensureReady(ctx context.Context) (*snapshot, error) {
	if snap := s.idx.Load(); snap != nil {
		return snap, nil
	}
	if err := s.Rebuild(ctx); err != nil {
		return nil, fmt.Errorf("initial index build: %w", err)
	}
	return s.idx.Load(), nil
}

// record forwards the completed search to analytics. Fire-and-forget: the
// sink handles its own failures.
func (s *Service) record(ctx context.Context, q string, resultCount int) {
	if s.analytics == nil {
		return
	}
	s.analytics.RecordQuery(ctx, q, resultCount)
}

// buildSnapshot derives the immutable index snapshot: ordered entries, the
// id lookup, the deduplicated token vocabulary, and the facet lists.
func buildSnapshot(records []domain.ContentRecord) *snapshot {
	entries := make([]entry.Entry, 0, len(records))
	byID := make(map[string]entry.Entry, len(records))
	vocabSet := make(map[string]struct{})
	mythologies := make(map[string]struct{})
	contentTypes := make(map[string]struct{})
	domains := make(map[string]struct{})
	tags := make(map[string]struct{})

	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		e := entry.Build(rec)
		entries = append(entries, e)
		byID[e.ID] = e

		for _, t := range e.Tokens {
			vocabSet[t] = struct{}{}
		}
		if e.Mythology != "" {
			mythologies[e.Mythology] = struct{}{}
		}
		if e.ContentType != "" {
			contentTypes[e.ContentType] = struct{}{}
		}
		for _, d := range e.Attributes.Domains {
			domains[d] = struct{}{}
		}
		for _, t := range e.Tags {
			tags[t] = struct{}{}
		}
	}

	return &snapshot{
		entries: entries,
		byID:    byID,
		vocab:   sortedKeys(vocabSet),
		facets: result.Facets{
			Mythologies:  sortedKeys(mythologies),
			ContentTypes: sortedKeys(contentTypes),
			Domains:      sortedKeys(domains),
			Tags:         sortedKeys(tags),
		},
		builtAt: time.Now(),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
