package models

import "time"

// Episode is the resolved view of a single audio file. The filename is the
// identity: it is the lookup key in the metadata document and the path
// segment used for streaming. Every other field is independently optional.
type Episode struct {
	Filename        string     `json:"filename"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	Author          *string    `json:"author,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	Explicit        *bool      `json:"explicit,omitempty"`
	Categories      []string   `json:"categories,omitempty"`
	Keywords        []string   `json:"keywords,omitempty"`
	Image           *string    `json:"image,omitempty"`

	// Filled in by the assembler once the episode passes the release gate.
	MIMEType  string `json:"mime_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	// URL is set when the bytes live on the hosting platform. For locally
	// served episodes the server derives the URL from the request instead.
	URL string `json:"url,omitempty"`
}

// Podcast describes the feed as a whole.
type Podcast struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Language    string   `json:"language,omitempty"`
	Copyright   string   `json:"copyright,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Explicit    *bool    `json:"explicit,omitempty"`
	Image       string   `json:"image,omitempty"`
	Email       string   `json:"email,omitempty"`
}
