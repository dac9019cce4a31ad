package feed

import (
	"fmt"
	"net/url"
	"time"
)

// Feed metadata and normalized entry types

type Meta struct {
	Title       string
	Link        string
	Description string
	Language    string
	UpdatedAt   *time.Time
}

// Entry is the normalized shape every source adapter produces. PublishedAt is
// always UTC. URL (or VideoID, when set) is the identity key for dedup.
type Entry struct {
	GUID        string    `json:"guid,omitempty"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Body        string    `json:"body,omitempty"`
	SourceTag   string    `json:"source_tag"`
	VideoID     string    `json:"video_id,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Key returns the identity used for dedup across feeds and sources: the video
// ID for video entries, the normalized URL otherwise.
func (e Entry) Key() string {
	if e.VideoID != "" {
		return e.VideoID
	}
	return NormalizeURL(e.URL)
}

// Validate rejects entries with no usable identity or timestamp. Entries lacking
// a parseable publish time are dropped upstream, so a zero PublishedAt here
// means a construction bug, not bad feed data.
func (e Entry) Validate() error {
	if e.URL == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidEntry)
	}

	parsed, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: URL must be absolute http(s), got %q", ErrInvalidEntry, e.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: URL missing host: %q", ErrInvalidEntry, e.URL)
	}

	if e.PublishedAt.IsZero() {
		return fmt.Errorf("%w: zero publish time for %q", ErrInvalidEntry, e.URL)
	}

	return nil
}
