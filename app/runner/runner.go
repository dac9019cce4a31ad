// Package runner drives the aggregation pipeline: one sequential pass over
// the configured sources, merged into a deduplicated, time-ordered report.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
	"github.com/CrSamson/my-ai-news-aggregator/app/report"
	"github.com/CrSamson/my-ai-news-aggregator/app/sources"
)

// Options control one aggregation run.
type Options struct {
	Hours            int
	FetchContent     bool
	FetchTranscripts bool
}

type Runner struct {
	sources []sources.Source
	opts    Options
	now     func() time.Time
}

func New(srcs []sources.Source, opts Options) *Runner {
	return &Runner{
		sources: srcs,
		opts:    opts,
		now:     time.Now,
	}
}

// Run fetches every source in order and assembles the report. Per-source
// failures are logged and contribute nothing; even a run where every source
// is unreachable yields an empty report, not an error.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	result := &report.Report{
		GeneratedAt: r.now().UTC(),
		WindowHours: r.opts.Hours,
	}

	slog.Info("Aggregation run started", "window_hours", r.opts.Hours, "sources", len(r.sources))

	deduper := feed.NewDeduper()
	groups := make(map[string][]feed.Entry)
	groupOrder := make([]string, 0)

	for i, src := range r.sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("Fetching source",
			"progress", i+1,
			"total", len(r.sources),
			"source", src.Name(),
			"category", src.Category())

		entries, err := src.Fetch(ctx, r.opts.Hours, r.enrichFor(src))
		if err != nil {
			if errors.Is(err, feed.ErrSourceUnavailable) {
				slog.Warn("Source unavailable, skipping", "source", src.Name(), "error", err)
			} else {
				slog.Error("Source failed, skipping", "source", src.Name(), "error", err)
			}
			entries = nil
		}

		if _, ok := groups[src.Category()]; !ok {
			groupOrder = append(groupOrder, src.Category())
			groups[src.Category()] = make([]feed.Entry, 0)
		}

		kept := 0
		for _, entry := range entries {
			if !deduper.Add(entry.Key()) {
				continue
			}
			groups[src.Category()] = append(groups[src.Category()], entry)
			kept++
		}

		slog.Info("Source done", "source", src.Name(), "entries", kept, "duplicates", len(entries)-kept)
	}

	for _, name := range groupOrder {
		entries := groups[name]
		feed.SortByPublishedDesc(entries)
		result.Groups = append(result.Groups, report.Group{
			Name:    name,
			Count:   len(entries),
			Entries: entries,
		})
	}

	slog.Info("Aggregation run complete", "entries", result.TotalEntries())

	return result, nil
}

// enrichFor maps the two enrichment switches onto the adapter categories:
// article bodies for textual sources, transcripts for video sources.
func (r *Runner) enrichFor(src sources.Source) bool {
	if src.Category() == sources.CategoryVideos {
		return r.opts.FetchTranscripts
	}
	return r.opts.FetchContent
}
