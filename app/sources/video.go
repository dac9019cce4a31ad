package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
	"github.com/CrSamson/my-ai-news-aggregator/app/youtube"
)

// VideoSource aggregates recent uploads from a set of YouTube channels via
// their public video feeds. Handles that cannot be resolved to a channel ID
// are skipped, never fatal for the run.
type VideoSource struct {
	name        string
	handles     []string
	resolver    *youtube.Resolver
	transcripts *youtube.TranscriptClient
	client      *feed.Client
	parser      *feed.Parser
	feedBaseURL string
	now         func() time.Time
}

func NewVideoSource(name string, handles []string, resolver *youtube.Resolver, transcripts *youtube.TranscriptClient, client *feed.Client, parser *feed.Parser) *VideoSource {
	return &VideoSource{
		name:        name,
		handles:     handles,
		resolver:    resolver,
		transcripts: transcripts,
		client:      client,
		parser:      parser,
		feedBaseURL: youtube.DefaultBaseURL,
		now:         time.Now,
	}
}

func (s *VideoSource) Name() string {
	return s.name
}

func (s *VideoSource) Category() string {
	return CategoryVideos
}

func (s *VideoSource) Fetch(ctx context.Context, hours int, enrichTranscripts bool) ([]feed.Entry, error) {
	window := feed.Window{Hours: hours}
	now := s.now().UTC()

	deduper := feed.NewDeduper()
	results := make([]feed.Entry, 0)

	for _, handle := range s.handles {
		channelID, err := s.resolver.Resolve(ctx, handle)
		if err != nil {
			if errors.Is(err, youtube.ErrChannelNotResolved) {
				slog.Warn("Skipping unresolvable channel", "source", s.name, "handle", handle)
				continue
			}
			return nil, err
		}

		entries, err := s.fetchChannel(ctx, channelID)
		if err != nil {
			slog.Warn("Channel feed fetch failed", "source", s.name, "handle", handle, "error", err)
			continue
		}

		count := 0
		for _, entry := range window.Apply(entries, now) {
			if err := entry.Validate(); err != nil {
				slog.Debug("Dropping invalid entry", "source", s.name, "error", err)
				continue
			}
			if !deduper.Add(entry.Key()) {
				continue
			}

			entry.SourceTag = handle

			if enrichTranscripts && entry.VideoID != "" {
				entry.Body = s.fetchTranscript(ctx, entry.VideoID)
			}

			results = append(results, entry)
			count++
		}

		slog.Info("Channel fetched", "source", s.name, "handle", handle, "videos", count)
	}

	feed.SortByPublishedDesc(results)
	return results, nil
}

func (s *VideoSource) fetchChannel(ctx context.Context, channelID string) ([]feed.Entry, error) {
	feedURL := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", s.feedBaseURL, url.QueryEscape(channelID))

	data, err := s.client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	_, entries, err := s.parser.Run(data)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// fetchTranscript retrieves the transcript for one video. Disabled captions,
// unavailable videos and blocked requests all land here as errors and degrade
// to an empty body.
func (s *VideoSource) fetchTranscript(ctx context.Context, videoID string) string {
	transcript, err := s.transcripts.Fetch(ctx, videoID)
	if err != nil {
		slog.Warn("Transcript unavailable", "source", s.name, "video_id", videoID, "error", err)
		return ""
	}
	return transcript
}
