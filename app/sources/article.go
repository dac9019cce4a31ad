package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/enrich"
	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

// ArticleSource aggregates one publisher's blog feeds. A publisher often
// splits announcements across several feeds with overlapping items, so the
// merge dedups by URL before anything else.
type ArticleSource struct {
	name       string
	feedURLs   []string
	floorToDay bool
	client     *feed.Client
	parser     *feed.Parser
	extractor  *enrich.Extractor
	now        func() time.Time
}

func NewArticleSource(name string, feedURLs []string, floorToDay bool, client *feed.Client, parser *feed.Parser, extractor *enrich.Extractor) *ArticleSource {
	return &ArticleSource{
		name:       name,
		feedURLs:   feedURLs,
		floorToDay: floorToDay,
		client:     client,
		parser:     parser,
		extractor:  extractor,
		now:        time.Now,
	}
}

func (s *ArticleSource) Name() string {
	return s.name
}

func (s *ArticleSource) Category() string {
	return CategoryArticles
}

func (s *ArticleSource) Fetch(ctx context.Context, hours int, enrichBodies bool) ([]feed.Entry, error) {
	window := feed.Window{Hours: hours, FloorToDay: s.floorToDay}
	now := s.now().UTC()

	deduper := feed.NewDeduper()
	results := make([]feed.Entry, 0)
	failed := 0

	for _, feedURL := range s.feedURLs {
		data, err := s.client.Get(ctx, feedURL)
		if err != nil {
			slog.Warn("Feed fetch failed", "source", s.name, "url", feedURL, "error", err)
			failed++
			continue
		}

		_, entries, err := s.parser.Run(data)
		if err != nil {
			slog.Warn("Feed parse failed", "source", s.name, "url", feedURL, "error", err)
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

			entry.SourceTag = s.name

			if enrichBodies {
				entry.Body = s.enrichBody(ctx, entry.URL)
			}

			results = append(results, entry)
		}
	}

	if failed == len(s.feedURLs) && len(s.feedURLs) > 0 {
		return nil, fmt.Errorf("%w: all %d feeds failed for source %q", feed.ErrSourceUnavailable, failed, s.name)
	}

	feed.SortByPublishedDesc(results)
	return results, nil
}

// enrichBody fetches the full article body. Failures degrade to an empty
// string; one unreadable article must not fail the batch.
func (s *ArticleSource) enrichBody(ctx context.Context, articleURL string) string {
	body, err := s.extractor.Run(ctx, articleURL)
	if err != nil {
		slog.Warn("Content enrichment failed", "source", s.name, "url", articleURL, "error", err)
		return ""
	}
	return body
}
