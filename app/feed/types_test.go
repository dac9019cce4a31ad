package feed

import (
	"errors"
	"testing"
	"time"
)

func TestEntryValidate(t *testing.T) {
	valid := Entry{
		Title:       "Test",
		URL:         "https://example.com/a",
		PublishedAt: time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid entry, got: %v", err)
	}

	tests := []struct {
		name  string
		entry Entry
	}{
		{"empty URL", Entry{PublishedAt: valid.PublishedAt}},
		{"relative URL", Entry{URL: "/a", PublishedAt: valid.PublishedAt}},
		{"non-http scheme", Entry{URL: "ftp://example.com/a", PublishedAt: valid.PublishedAt}},
		{"zero timestamp", Entry{URL: "https://example.com/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Expected ErrInvalidEntry, got: %v", err)
			}
		})
	}
}

func TestEntryKey(t *testing.T) {
	video := Entry{URL: "https://www.youtube.com/watch?v=abc", VideoID: "abc123"}
	if video.Key() != "abc123" {
		t.Errorf("Expected video ID as key, got: %s", video.Key())
	}

	article := Entry{URL: "https://Example.com/post/"}
	if article.Key() != "https://example.com/post" {
		t.Errorf("Expected normalized URL as key, got: %s", article.Key())
	}
}
