// Package sources holds the closed set of source adapters. Each adapter
// fetches one external source category and produces normalized entries; the
// variant is chosen at configuration time.
package sources

import (
	"context"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

// Report group names. Every adapter belongs to exactly one category.
const (
	CategoryArticles = "articles"
	CategoryNews     = "news"
	CategoryVideos   = "videos"
)

// Source is the contract every adapter implements. Fetch returns entries
// published within the last hours, sorted newest first, deduplicated within
// the source. When enrich is set the adapter attaches full bodies; a
// per-item enrichment failure never fails the batch.
type Source interface {
	Name() string
	Category() string
	Fetch(ctx context.Context, hours int, enrich bool) ([]feed.Entry, error)
}
