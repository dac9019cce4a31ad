package sources

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

// CategorySource aggregates a news site that publishes one feed per category
// ("topstories", "markets", ...). The configured category list selects which
// feeds from the map are fetched; an empty list means all of them.
type CategorySource struct {
	name       string
	feeds      map[string]string
	categories []string
	client     *feed.Client
	parser     *feed.Parser
	now        func() time.Time
}

func NewCategorySource(name string, feeds map[string]string, categories []string, client *feed.Client, parser *feed.Parser) (*CategorySource, error) {
	for _, category := range categories {
		if _, ok := feeds[category]; !ok {
			return nil, fmt.Errorf("unknown category %q for source %q", category, name)
		}
	}

	if len(categories) == 0 {
		categories = make([]string, 0, len(feeds))
		for category := range feeds {
			categories = append(categories, category)
		}
		sort.Strings(categories)
	}

	return &CategorySource{
		name:       name,
		feeds:      feeds,
		categories: categories,
		client:     client,
		parser:     parser,
		now:        time.Now,
	}, nil
}

func (s *CategorySource) Name() string {
	return s.name
}

func (s *CategorySource) Category() string {
	return CategoryNews
}

func (s *CategorySource) Fetch(ctx context.Context, hours int, _ bool) ([]feed.Entry, error) {
	window := feed.Window{Hours: hours}
	now := s.now().UTC()

	deduper := feed.NewDeduper()
	results := make([]feed.Entry, 0)
	failed := 0

	for _, category := range s.categories {
		feedURL := s.feeds[category]

		data, err := s.client.Get(ctx, feedURL)
		if err != nil {
			slog.Warn("Category feed fetch failed", "source", s.name, "category", category, "error", err)
			failed++
			continue
		}

		_, entries, err := s.parser.Run(data)
		if err != nil {
			slog.Warn("Category feed parse failed", "source", s.name, "category", category, "error", err)
			failed++
			continue
		}

		for _, entry := range window.Apply(entries, now) {
			if err := entry.Validate(); err != nil {
				slog.Debug("Dropping invalid entry", "source", s.name, "error", err)
				continue
			}
			if !deduper.Add(entry.Key()) {
				continue
			}

			entry.SourceTag = fmt.Sprintf("%s/%s", s.name, category)
			results = append(results, entry)
		}
	}

	if failed == len(s.categories) && len(s.categories) > 0 {
		return nil, fmt.Errorf("%w: all %d category feeds failed for source %q", feed.ErrSourceUnavailable, failed, s.name)
	}

	feed.SortByPublishedDesc(results)
	return results, nil
}
