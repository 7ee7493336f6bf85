package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mythopedia-cloud/mythopedia"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, WithAPIKey("secret"))
}

func TestSearch_BuildsRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(mythopedia.Response{TotalResults: 1})
	})

	resp, err := c.Search(context.Background(), "thunder god", &SearchOptions{
		Sort:  mythopedia.SortPopular,
		Limit: 5,
		Filters: mythopedia.Filters{
			Mythologies: []string{"norse"},
			Tags:        []string{"aesir"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalResults != 1 {
		t.Errorf("expected 1 result, got %d", resp.TotalResults)
	}
	if gotPath != "/search" {
		t.Errorf("path: got %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header: got %q", gotAuth)
	}
	if gotQuery["q"][0] != "thunder god" || gotQuery["sort"][0] != "popular" ||
		gotQuery["limit"][0] != "5" || gotQuery["mythology"][0] != "norse" ||
		gotQuery["tag"][0] != "aesir" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}
}

func TestSearch_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "index_not_ready",
			"message": "index not ready",
		})
	})

	_, err := c.Search(context.Background(), "thor", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || apiErr.Code != "index_not_ready" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestAutocomplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/autocomplete" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string][]string{"suggestions": {"Thor", "Thoth"}})
	})

	got, err := c.Autocomplete(context.Background(), "th", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "Thor" {
		t.Errorf("unexpected suggestions: %v", got)
	}
}

func TestSuggestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []mythopedia.Suggestion{
				{Original: "zeuss", Suggestion: "zeus", Confidence: 0.8},
			},
		})
	})

	got, err := c.Suggestions(context.Background(), "zeuss")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Suggestion != "zeus" {
		t.Errorf("unexpected suggestions: %+v", got)
	}
}

func TestContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content/zeus" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(mythopedia.Record{ID: "zeus", Title: "Zeus"})
	})

	rec, err := c.Content(context.Background(), "zeus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "Zeus" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestReindex(t *testing.T) {
	var gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "entries": 42})
	})

	if err := c.Reindex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method: got %s, want POST", gotMethod)
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status:       "ok",
			Checks:       map[string]string{"database": "ok", "index": "ok"},
			IndexEntries: 42,
		})
	})

	report, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != "ok" || report.IndexEntries != 42 {
		t.Errorf("unexpected report: %+v", report)
	}
}
