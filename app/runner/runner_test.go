package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
	"github.com/CrSamson/my-ai-news-aggregator/app/sources"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeSource is a configurable in-memory source for pipeline tests.
type fakeSource struct {
	name     string
	category string
	entries  []feed.Entry
	err      error

	lastEnrich bool
	calls      int
}

func (s *fakeSource) Name() string     { return s.name }
func (s *fakeSource) Category() string { return s.category }

func (s *fakeSource) Fetch(_ context.Context, _ int, enrich bool) ([]feed.Entry, error) {
	s.calls++
	s.lastEnrich = enrich
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func entry(title, url string, age time.Duration) feed.Entry {
	return feed.Entry{
		GUID:        url,
		Title:       title,
		URL:         url,
		SourceTag:   "test",
		PublishedAt: testNow.Add(-age),
	}
}

func newTestRunner(srcs []sources.Source, opts Options) *Runner {
	r := New(srcs, opts)
	r.now = func() time.Time { return testNow }
	return r
}

func TestRunAssemblesGroups(t *testing.T) {
	articles := &fakeSource{
		name:     "anthropic",
		category: sources.CategoryArticles,
		entries: []feed.Entry{
			entry("Older Post", "https://example.com/older", 6*time.Hour),
			entry("Newer Post", "https://example.com/newer", 1*time.Hour),
		},
	}
	videos := &fakeSource{
		name:     "youtube",
		category: sources.CategoryVideos,
		entries: []feed.Entry{
			entry("Launch Stream", "https://www.youtube.com/watch?v=vid00000001", 2*time.Hour),
		},
	}

	r := newTestRunner([]sources.Source{articles, videos}, Options{Hours: 24})
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !report.GeneratedAt.Equal(testNow) {
		t.Errorf("Expected generated_at %v, got %v", testNow, report.GeneratedAt)
	}
	if report.WindowHours != 24 {
		t.Errorf("Expected window 24, got %d", report.WindowHours)
	}
	if len(report.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(report.Groups))
	}
	if report.Groups[0].Name != sources.CategoryArticles {
		t.Errorf("Expected first group %q, got %q", sources.CategoryArticles, report.Groups[0].Name)
	}
	if report.TotalEntries() != 3 {
		t.Errorf("Expected 3 entries, got %d", report.TotalEntries())
	}

	// Group entries come out newest first.
	group := report.Group(sources.CategoryArticles)
	if group == nil {
		t.Fatal("Expected articles group")
	}
	if group.Entries[0].Title != "Newer Post" {
		t.Errorf("Expected 'Newer Post' first, got %q", group.Entries[0].Title)
	}
}

func TestRunDeduplicatesAcrossSources(t *testing.T) {
	first := &fakeSource{
		name:     "first",
		category: sources.CategoryArticles,
		entries: []feed.Entry{
			entry("Shared Story", "https://example.com/a", 1*time.Hour),
		},
	}
	second := &fakeSource{
		name:     "second",
		category: sources.CategoryArticles,
		entries: []feed.Entry{
			entry("Shared Story Again", "https://example.com/a", 2*time.Hour),
			entry("Unique Story", "https://example.com/b", 3*time.Hour),
		},
	}

	r := newTestRunner([]sources.Source{first, second}, Options{Hours: 24})
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if report.TotalEntries() != 2 {
		t.Fatalf("Expected 2 entries after dedup, got %d", report.TotalEntries())
	}

	group := report.Group(sources.CategoryArticles)
	if group.Entries[0].Title != "Shared Story" {
		t.Errorf("Expected the first source to win the duplicate, got %q", group.Entries[0].Title)
	}
}

func TestRunToleratesUnavailableSource(t *testing.T) {
	down := &fakeSource{
		name:     "down",
		category: sources.CategoryArticles,
		err:      fmt.Errorf("%w: connection refused", feed.ErrSourceUnavailable),
	}
	up := &fakeSource{
		name:     "up",
		category: sources.CategoryArticles,
		entries: []feed.Entry{
			entry("Survivor", "https://example.com/survivor", 1*time.Hour),
		},
	}

	r := newTestRunner([]sources.Source{down, up}, Options{Hours: 24})
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if report.TotalEntries() != 1 {
		t.Errorf("Expected 1 entry from the healthy source, got %d", report.TotalEntries())
	}
}

func TestRunAllSourcesDown(t *testing.T) {
	srcs := []sources.Source{
		&fakeSource{name: "a", category: sources.CategoryArticles, err: feed.ErrSourceUnavailable},
		&fakeSource{name: "b", category: sources.CategoryNews, err: errors.New("boom")},
	}

	r := newTestRunner(srcs, Options{Hours: 24})
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error even with every source down, got: %v", err)
	}

	if report.TotalEntries() != 0 {
		t.Errorf("Expected empty report, got %d entries", report.TotalEntries())
	}
	if !report.GeneratedAt.Equal(testNow) {
		t.Errorf("Expected generated_at %v, got %v", testNow, report.GeneratedAt)
	}
}

func TestRunEnrichmentFlags(t *testing.T) {
	articles := &fakeSource{name: "articles", category: sources.CategoryArticles}
	news := &fakeSource{name: "news", category: sources.CategoryNews}
	videos := &fakeSource{name: "videos", category: sources.CategoryVideos}

	r := newTestRunner([]sources.Source{articles, news, videos}, Options{
		Hours:            24,
		FetchContent:     true,
		FetchTranscripts: false,
	})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !articles.lastEnrich {
		t.Error("Expected article source to fetch content")
	}
	if !news.lastEnrich {
		t.Error("Expected news source to receive the content flag")
	}
	if videos.lastEnrich {
		t.Error("Expected video source to skip transcripts")
	}
}

func TestRunIsRepeatable(t *testing.T) {
	src := &fakeSource{
		name:     "static",
		category: sources.CategoryArticles,
		entries: []feed.Entry{
			entry("One", "https://example.com/one", 1*time.Hour),
			entry("Two", "https://example.com/two", 2*time.Hour),
		},
	}

	first, err := newTestRunner([]sources.Source{src}, Options{Hours: 24}).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := newTestRunner([]sources.Source{src}, Options{Hours: 24}).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if first.TotalEntries() != second.TotalEntries() {
		t.Errorf("Expected identical entry counts, got %d and %d", first.TotalEntries(), second.TotalEntries())
	}
	for i := range first.Groups[0].Entries {
		if first.Groups[0].Entries[i].URL != second.Groups[0].Entries[i].URL {
			t.Errorf("Expected identical ordering on repeat runs at index %d", i)
		}
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	src := &fakeSource{name: "never", category: sources.CategoryArticles}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestRunner([]sources.Source{src}, Options{Hours: 24}).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if src.calls != 0 {
		t.Errorf("Expected no fetches after cancellation, got %d", src.calls)
	}
}
