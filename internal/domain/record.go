package domain

import "time"

// ContentRecord is one encyclopedia entry as stored in the content store.
// Records arrive JSON-shaped from the database; every field except ID is
// optional and sparse records are normalized, never rejected.
type ContentRecord struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Summary       string      `json:"summary,omitempty"`
	ContentType   string      `json:"contentType,omitempty"`
	Mythology     string      `json:"mythology,omitempty"`
	MythologyName string      `json:"mythologyName,omitempty"`
	Section       string      `json:"section,omitempty"`
	Icon          string      `json:"icon,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Attributes    Attributes  `json:"attributes,omitempty"`
	RichContent   RichContent `json:"richContent,omitempty"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
	Views         int64       `json:"views,omitempty"`
	Votes         int64       `json:"votes,omitempty"`
}

// Attributes holds the free-form attribute arrays that participate in search.
type Attributes struct {
	Domains []string `json:"domains,omitempty"`
	Titles  []string `json:"titles,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

// RichContent holds optional rich-content panels attached to a record.
type RichContent struct {
	Panels []Panel `json:"panels,omitempty"`
}

// Panel is a single rich-content panel with an optional title and body.
type Panel struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}
