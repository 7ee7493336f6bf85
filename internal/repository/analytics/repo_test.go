package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mythopedia-cloud/mythopedia/internal/db"
	"github.com/mythopedia-cloud/mythopedia/internal/usecase/analytics"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn     func(ctx context.Context, key string) ([]byte, error)
	setFn     func(ctx context.Context, key string, value []byte) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	hincrByFn func(ctx context.Context, key, field string, val int64) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HIncrBy(ctx context.Context, key, field string, val int64) error {
	if m.hincrByFn != nil {
		return m.hincrByFn(ctx, key, field, val)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "mythopedia:"), ms
}

// --- Load ---

func TestLoad_FreshInstall(t *testing.T) {
	repo, _ := newTestRepo(t)

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.History) != 0 || len(state.Popularity) != 0 {
		t.Errorf("expected empty state, got %+v", state)
	}
}

func TestLoad_RestoresState(t *testing.T) {
	repo, ms := newTestRepo(t)

	history := []analytics.Event{
		{Query: "zeus", ResultCount: 3, Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	blob, _ := json.Marshal(history)

	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "mythopedia:analytics:history" {
			t.Errorf("unexpected key: %s", key)
		}
		return blob, nil
	}
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "mythopedia:analytics:popularity" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{"zeus": "7", "thor": "2", "bad": "x"}, nil
	}

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.History) != 1 || state.History[0].Query != "zeus" {
		t.Errorf("history restored wrong: %+v", state.History)
	}
	if state.Popularity["zeus"] != 7 || state.Popularity["thor"] != 2 {
		t.Errorf("popularity restored wrong: %+v", state.Popularity)
	}
	if _, ok := state.Popularity["bad"]; ok {
		t.Error("unparsable counter should be skipped")
	}
}

func TestLoad_GetError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection lost")
	}

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatal("expected error on GET failure")
	}
}

// --- SaveHistory ---

func TestSaveHistory(t *testing.T) {
	repo, ms := newTestRepo(t)

	var saved []byte
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		if key != "mythopedia:analytics:history" {
			t.Errorf("unexpected key: %s", key)
		}
		saved = value
		return nil
	}

	events := []analytics.Event{{Query: "odin", ResultCount: 1, Timestamp: time.Now().UTC()}}
	if err := repo.SaveHistory(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []analytics.Event
	if err := json.Unmarshal(saved, &got); err != nil {
		t.Fatalf("saved blob not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Query != "odin" {
		t.Errorf("saved history wrong: %+v", got)
	}
}

// --- Counters ---

func TestIncrQueryCount(t *testing.T) {
	repo, ms := newTestRepo(t)

	var key, field string
	ms.hincrByFn = func(_ context.Context, k, f string, val int64) error {
		key, field = k, f
		if val != 1 {
			t.Errorf("expected increment of 1, got %d", val)
		}
		return nil
	}

	if err := repo.IncrQueryCount(context.Background(), "thunder god"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "mythopedia:analytics:popularity" || field != "thunder god" {
		t.Errorf("unexpected HINCRBY args: %s %s", key, field)
	}
}

func TestIncrRecordViews(t *testing.T) {
	repo, ms := newTestRepo(t)

	var key, field string
	ms.hincrByFn = func(_ context.Context, k, f string, _ int64) error {
		key, field = k, f
		return nil
	}

	if err := repo.IncrRecordViews(context.Background(), "zeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "mythopedia:analytics:views" || field != "zeus" {
		t.Errorf("unexpected HINCRBY args: %s %s", key, field)
	}
}
