package entry

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mythopedia-cloud/mythopedia/internal/domain"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/token"
)

func fullRecord() domain.ContentRecord {
	return domain.ContentRecord{
		ID:            "zeus",
		Title:         "Zeus",
		Subtitle:      "King of the Gods",
		Summary:       "Ruler of Mount Olympus",
		ContentType:   "deity",
		Mythology:     "greek",
		MythologyName: "Greek Mythology",
		Section:       "pantheon",
		Tags:          []string{"sky", "thunder"},
		Attributes: domain.Attributes{
			Domains: []string{"sky", "law"},
			Titles:  []string{"Cloud-Gatherer"},
			Symbols: []string{"thunderbolt", "eagle"},
		},
		RichContent: domain.RichContent{Panels: []domain.Panel{
			{Title: "Origins", Content: "Son of Cronus and Rhea"},
			{Content: "Overthrew the Titans"},
		}},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Views:     42,
		Votes:     7,
	}
}

func TestBuildSearchableTextOrder(t *testing.T) {
	e := Build(fullRecord())
	want := strings.ToLower(
		"Zeus King of the Gods Ruler of Mount Olympus greek Greek Mythology pantheon deity " +
			"sky thunder sky law Cloud-Gatherer thunderbolt eagle " +
			"Origins Son of Cronus and Rhea Overthrew the Titans")
	if e.SearchableText != want {
		t.Errorf("SearchableText =\n%q\nwant\n%q", e.SearchableText, want)
	}
}

func TestBuildTokensDerivable(t *testing.T) {
	e := Build(fullRecord())
	if !reflect.DeepEqual(e.Tokens, token.Tokenize(e.SearchableText)) {
		t.Error("Tokens not derivable from SearchableText")
	}
}

func TestBuildSparseRecord(t *testing.T) {
	e := Build(domain.ContentRecord{ID: "minimal"})
	if e.ID != "minimal" {
		t.Errorf("ID = %q", e.ID)
	}
	if e.SearchableText != "" {
		t.Errorf("SearchableText = %q, want empty", e.SearchableText)
	}
	if len(e.Tokens) != 0 {
		t.Errorf("Tokens = %v, want empty", e.Tokens)
	}
}

func TestBuildIndex(t *testing.T) {
	records := []domain.ContentRecord{
		{ID: "zeus", Title: "Zeus"},
		{ID: "thor", Title: "Thor"},
		{Title: "no id, skipped"},
	}
	index := BuildIndex(records)
	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}
	if index["zeus"].Title != "Zeus" || index["thor"].Title != "Thor" {
		t.Errorf("unexpected entries: %v", index)
	}
}

func TestBuildIndexIdempotent(t *testing.T) {
	records := []domain.ContentRecord{fullRecord()}
	a := BuildIndex(records)
	b := BuildIndex(records)
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildIndex not idempotent")
	}
}

func TestFieldValue(t *testing.T) {
	e := Build(fullRecord())
	tests := []struct {
		field string
		want  string
		ok    bool
	}{
		{"mythology", "greek", true},
		{"type", "deity", true},
		{"contenttype", "deity", true},
		{"section", "pantheon", true},
		{"title", "Zeus", true},
		{"unknown", "", false},
	}
	for _, tt := range tests {
		got, ok := e.FieldValue(tt.field)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FieldValue(%q) = %q, %v; want %q, %v", tt.field, got, ok, tt.want, tt.ok)
		}
	}
}
