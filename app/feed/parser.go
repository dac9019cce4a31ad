package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses raw feed data and returns feed metadata plus normalized entries.
// Items whose publish time cannot be determined are dropped, never assigned
// "now"; fabricated freshness would defeat the time-window filter.
func (p *Parser) Run(data []byte) (*Meta, []Entry, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	meta := &Meta{
		Title:       parsed.Title,
		Link:        parsed.Link,
		Description: parsed.Description,
		Language:    parsed.Language,
	}

	if parsed.UpdatedParsed != nil {
		meta.UpdatedAt = parsed.UpdatedParsed
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entry, ok := p.normalizeItem(item)
		if !ok {
			slog.Debug("Dropping item without parseable timestamp", "link", item.Link, "title", item.Title)
			continue
		}
		entries = append(entries, entry)
	}

	return meta, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) (Entry, bool) {
	publishedAt, ok := p.parseTimestamp(item)
	if !ok {
		return Entry{}, false
	}

	entry := Entry{
		GUID:        cmp.Or(item.GUID, item.Link),
		Title:       item.Title,
		URL:         item.Link,
		Description: cmp.Or(item.Description, item.Content),
		PublishedAt: publishedAt,
	}

	if item.Categories != nil {
		entry.Categories = item.Categories
	}

	entry.VideoID = extensionValue(item, "yt", "videoId")

	// YouTube feeds carry the description inside media:group.
	if entry.Description == "" {
		entry.Description = mediaDescription(item)
	}

	return entry, true
}

// parseTimestamp tries the candidate fields in a fixed order: the parsed
// publish date, the parsed update date, then a lenient parse of the raw
// strings. The first hit wins; no hit drops the item.
func (p *Parser) parseTimestamp(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC(), true
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC(), true
	}

	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if ts, err := dateparse.ParseAny(raw); err == nil {
			return ts.UTC(), true
		}
	}

	return time.Time{}, false
}

func extensionValue(item *gofeed.Item, namespace, name string) string {
	exts, ok := item.Extensions[namespace]
	if !ok {
		return ""
	}
	values, ok := exts[name]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func mediaDescription(item *gofeed.Item) string {
	groups, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, group := range groups["group"] {
		for _, desc := range group.Children["description"] {
			if desc.Value != "" {
				return desc.Value
			}
		}
	}
	return ""
}
