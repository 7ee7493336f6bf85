package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mythopedia-cloud/mythopedia/internal/db"
	"github.com/mythopedia-cloud/mythopedia/internal/usecase/analytics"
)

// store is the consumer interface for analytics persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, val int64) error
}

// Repo persists analytics state: the query history as one JSON blob and
// the popularity/view counters as hashes, so increments stay atomic.
type Repo struct {
	store  store
	prefix string
}

// New creates an analytics repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Load restores the persisted analytics snapshot. A missing history key
// means a fresh install, not an error.
func (r *Repo) Load(ctx context.Context) (analytics.State, error) {
	state := analytics.State{Popularity: map[string]int64{}}

	blob, err := r.store.Get(ctx, r.historyKey())
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		// fresh install
	case err != nil:
		return analytics.State{}, fmt.Errorf("get history: %w", err)
	default:
		if err := json.Unmarshal(blob, &state.History); err != nil {
			return analytics.State{}, fmt.Errorf("unmarshal history: %w", err)
		}
	}

	counts, err := r.store.HGetAll(ctx, r.popularityKey())
	if err != nil {
		return analytics.State{}, fmt.Errorf("hgetall popularity: %w", err)
	}
	for query, raw := range counts {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		state.Popularity[query] = n
	}

	return state, nil
}

// SaveHistory persists the bounded query history wholesale.
func (r *Repo) SaveHistory(ctx context.Context, history []analytics.Event) error {
	blob, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := r.store.Set(ctx, r.historyKey(), blob); err != nil {
		return fmt.Errorf("set history: %w", err)
	}
	return nil
}

// IncrQueryCount bumps the popularity counter for one raw query.
func (r *Repo) IncrQueryCount(ctx context.Context, query string) error {
	if err := r.store.HIncrBy(ctx, r.popularityKey(), query, 1); err != nil {
		return fmt.Errorf("hincrby popularity: %w", err)
	}
	return nil
}

// IncrRecordViews bumps the view counter for one content record.
func (r *Repo) IncrRecordViews(ctx context.Context, id string) error {
	if err := r.store.HIncrBy(ctx, r.viewsKey(), id, 1); err != nil {
		return fmt.Errorf("hincrby views: %w", err)
	}
	return nil
}

// Key patterns: mythopedia:analytics:history, mythopedia:analytics:popularity,
// mythopedia:analytics:views

func (r *Repo) historyKey() string {
	return r.prefix + "analytics:history"
}

func (r *Repo) popularityKey() string {
	return r.prefix + "analytics:popularity"
}

func (r *Repo) viewsKey() string {
	return r.prefix + "analytics:views"
}
