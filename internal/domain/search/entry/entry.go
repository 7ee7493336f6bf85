// Package entry builds the denormalized index entries the search executor
// scores against. One Entry per content record; the index is replaced
// wholesale on rebuild and entries are never mutated in place.
package entry

import (
	"strings"
	"time"

	"github.com/mythopedia-cloud/mythopedia/internal/domain"
	"github.com/mythopedia-cloud/mythopedia/internal/domain/search/token"
)

// Entry is the precomputed, denormalized representation of one content
// record. Tokens are always derivable by re-tokenizing SearchableText.
type Entry struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Subtitle      string            `json:"subtitle,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	ContentType   string            `json:"contentType,omitempty"`
	Mythology     string            `json:"mythology,omitempty"`
	MythologyName string            `json:"mythologyName,omitempty"`
	Section       string            `json:"section,omitempty"`
	Icon          string            `json:"icon,omitempty"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Attributes    domain.Attributes `json:"attributes,omitempty"`
	SearchableText string           `json:"-"`
	Tokens        []string          `json:"-"`
	CreatedAt     time.Time         `json:"createdAt,omitempty"`
	Views         int64             `json:"views"`
	Votes         int64             `json:"votes"`
}

// Build derives one Entry from a content record. Missing fields are treated
// as empty throughout; a sparse record never fails.
func Build(rec domain.ContentRecord) Entry {
	searchable := searchableText(rec)
	return Entry{
		ID:             rec.ID,
		Title:          rec.Title,
		Subtitle:       rec.Subtitle,
		Summary:        rec.Summary,
		ContentType:    rec.ContentType,
		Mythology:      rec.Mythology,
		MythologyName:  rec.MythologyName,
		Section:        rec.Section,
		Icon:           rec.Icon,
		ImageURL:       rec.ImageURL,
		Tags:           append([]string(nil), rec.Tags...),
		Attributes:     copyAttributes(rec.Attributes),
		SearchableText: searchable,
		Tokens:         token.Tokenize(searchable),
		CreatedAt:      rec.CreatedAt,
		Views:          rec.Views,
		Votes:          rec.Votes,
	}
}

// BuildIndex builds the full id -> entry mapping. Idempotent and free of side
// effects; the caller swaps the result in whole.
func BuildIndex(records []domain.ContentRecord) map[string]Entry {
	index := make(map[string]Entry, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		index[rec.ID] = Build(rec)
	}
	return index
}

// searchableText concatenates every textual surface of a record in a fixed
// order, space-joined and lowercased. Empty parts are skipped.
func searchableText(rec domain.ContentRecord) string {
	parts := []string{
		rec.Title, rec.Subtitle, rec.Summary,
		rec.Mythology, rec.MythologyName, rec.Section, rec.ContentType,
	}
	parts = append(parts, rec.Tags...)
	parts = append(parts, rec.Attributes.Domains...)
	parts = append(parts, rec.Attributes.Titles...)
	parts = append(parts, rec.Attributes.Symbols...)
	for _, p := range rec.RichContent.Panels {
		parts = append(parts, p.Title, p.Content)
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

// FieldValue returns the entry's value for a field-scoped query filter.
// Field names mirror the record's JSON keys, lowercased.
func (e Entry) FieldValue(field string) (string, bool) {
	switch field {
	case "title":
		return e.Title, e.Title != ""
	case "subtitle":
		return e.Subtitle, e.Subtitle != ""
	case "summary":
		return e.Summary, e.Summary != ""
	case "contenttype", "type":
		return e.ContentType, e.ContentType != ""
	case "mythology":
		return e.Mythology, e.Mythology != ""
	case "mythologyname":
		return e.MythologyName, e.MythologyName != ""
	case "section":
		return e.Section, e.Section != ""
	}
	return "", false
}

func copyAttributes(a domain.Attributes) domain.Attributes {
	return domain.Attributes{
		Domains: append([]string(nil), a.Domains...),
		Titles:  append([]string(nil), a.Titles...),
		Symbols: append([]string(nil), a.Symbols...),
	}
}
