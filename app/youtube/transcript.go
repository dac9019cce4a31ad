package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

// DefaultLanguages is the transcript language priority list; the first
// available language wins.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}

// Track describes one caption track available for a video. Kind is "asr" for
// auto-generated tracks and empty for manually created ones.
type Track struct {
	LangCode string `xml:"lang_code,attr"`
	Name     string `xml:"name,attr"`
	Kind     string `xml:"kind,attr"`
}

func (t Track) generated() bool {
	return t.Kind == "asr"
}

type trackList struct {
	Tracks []Track `xml:"track"`
}

type transcriptDoc struct {
	Texts []string `xml:"text"`
}

// TranscriptClient fetches video transcripts through the unauthenticated
// timedtext endpoint. Any retrieval failure is reported as an error the
// caller downgrades to an empty body; transcripts are best-effort.
type TranscriptClient struct {
	client    *feed.Client
	baseURL   string
	languages []string
}

type TranscriptOption func(*TranscriptClient)

// TranscriptWithBaseURL overrides the endpoint base URL (useful for testing).
func TranscriptWithBaseURL(url string) TranscriptOption {
	return func(t *TranscriptClient) {
		t.baseURL = url
	}
}

func NewTranscriptClient(client *feed.Client, languages []string, opts ...TranscriptOption) *TranscriptClient {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	t := &TranscriptClient{
		client:    client,
		baseURL:   DefaultBaseURL,
		languages: languages,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Fetch returns the full transcript for a video as one space-joined string.
func (t *TranscriptClient) Fetch(ctx context.Context, videoID string) (string, error) {
	tracks, err := t.listTracks(ctx, videoID)
	if err != nil {
		return "", err
	}

	if len(tracks) == 0 {
		return "", fmt.Errorf("no transcript available for video %q", videoID)
	}

	track := selectTrack(tracks, t.languages)

	text, err := t.fetchTrack(ctx, videoID, track)
	if err != nil {
		return "", err
	}

	slog.Debug("Transcript fetched",
		"video_id", videoID,
		"lang", track.LangCode,
		"generated", track.generated(),
		"length", len(text))

	return text, nil
}

func (t *TranscriptClient) listTracks(ctx context.Context, videoID string) ([]Track, error) {
	listURL := fmt.Sprintf("%s/api/timedtext?type=list&v=%s", t.baseURL, url.QueryEscape(videoID))

	data, err := t.client.Get(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts for %q: %w", videoID, err)
	}

	var list trackList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse transcript list for %q: %w", videoID, err)
	}

	return list.Tracks, nil
}

func (t *TranscriptClient) fetchTrack(ctx context.Context, videoID string, track Track) (string, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", track.LangCode)
	if track.Name != "" {
		params.Set("name", track.Name)
	}
	if track.Kind != "" {
		params.Set("kind", track.Kind)
	}

	data, err := t.client.Get(ctx, t.baseURL+"/api/timedtext?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript for %q: %w", videoID, err)
	}

	var doc transcriptDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse transcript for %q: %w", videoID, err)
	}

	segments := make([]string, 0, len(doc.Texts))
	for _, text := range doc.Texts {
		text = strings.TrimSpace(html.UnescapeString(text))
		if text != "" {
			segments = append(segments, text)
		}
	}

	return strings.Join(segments, " "), nil
}

// selectTrack picks the transcript track to use, in priority order: a
// manually created track in a preferred language, then an auto-generated one
// in a preferred language, then whatever is available. Each step is a plain
// lookup; the first success short-circuits the rest.
func selectTrack(tracks []Track, preferred []string) Track {
	manual := make([]Track, 0, len(tracks))
	generated := make([]Track, 0, len(tracks))
	for _, track := range tracks {
		if track.generated() {
			generated = append(generated, track)
		} else {
			manual = append(manual, track)
		}
	}

	if track, ok := matchLanguage(manual, preferred); ok {
		return track
	}
	if track, ok := matchLanguage(generated, preferred); ok {
		return track
	}
	return tracks[0]
}

// matchLanguage finds the candidate track best matching the preference list,
// honoring its order. Matching goes through x/text so a bare "en" preference
// accepts "en-US" and "en-GB" tracks.
func matchLanguage(candidates []Track, preferred []string) (Track, bool) {
	if len(candidates) == 0 {
		return Track{}, false
	}

	tags := make([]language.Tag, 0, len(candidates))
	indexes := make([]int, 0, len(candidates))
	for i, track := range candidates {
		tag, err := language.Parse(track.LangCode)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		indexes = append(indexes, i)
	}

	if len(tags) == 0 {
		return Track{}, false
	}

	matcher := language.NewMatcher(tags)

	for _, pref := range preferred {
		want, err := language.Parse(pref)
		if err != nil {
			continue
		}
		if _, idx, conf := matcher.Match(want); conf >= language.High {
			return candidates[indexes[idx]], true
		}
	}

	return Track{}, false
}
