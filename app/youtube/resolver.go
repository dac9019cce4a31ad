// Package youtube resolves channel handles to channel IDs and retrieves video
// transcripts, using only unauthenticated endpoints.
package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

const DefaultBaseURL = "https://www.youtube.com"

// ErrChannelNotResolved is returned when a handle could not be mapped to a
// channel ID. Callers skip the channel and continue with others.
var ErrChannelNotResolved = errors.New("youtube: channel not resolved")

var (
	channelIDRe  = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)
	externalIDRe = regexp.MustCompile(`"externalId"\s*:\s*"(UC[a-zA-Z0-9_-]{22})"`)
	feedBackrefRe = regexp.MustCompile(`feeds/videos\.xml\?channel_id=(UC[a-zA-Z0-9_-]{22})`)
	canonicalRe  = regexp.MustCompile(`/channel/(UC[a-zA-Z0-9_-]{22})`)
	// regexp's repeat counts are capped at 1000, so express {0,2000} as two
	// chained {0,1000} repeats.
	headerBlobRe = regexp.MustCompile(`(?s)"header"\s*:\s*\{(.{0,1000}.{0,1000})`)
	headerIDRe   = regexp.MustCompile(`"channelId"\s*:\s*"(UC[a-zA-Z0-9_-]{22})"`)
)

// Resolver maps channel handles ("@name", "c/name", full URLs) to UC… channel
// IDs by scraping the channel's profile page.
type Resolver struct {
	client  *feed.Client
	baseURL string
}

type ResolverOption func(*Resolver)

// ResolverWithBaseURL overrides the site base URL (useful for testing).
func ResolverWithBaseURL(url string) ResolverOption {
	return func(r *Resolver) {
		r.baseURL = url
	}
}

func NewResolver(client *feed.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:  client,
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the channel ID for a handle or URL. Input that already is a
// channel ID is returned unchanged without any network call.
func (r *Resolver) Resolve(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimSpace(handle)

	if channelIDRe.MatchString(handle) {
		return handle, nil
	}

	profileURL := r.profileURL(handle)

	data, err := r.client.Get(ctx, profileURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrChannelNotResolved, handle, err)
	}

	id, ok := extractChannelID(data)
	if !ok {
		return "", fmt.Errorf("%w: no channel ID found at %s", ErrChannelNotResolved, profileURL)
	}

	slog.Debug("Resolved channel handle", "handle", handle, "channel_id", id)
	return id, nil
}

func (r *Resolver) profileURL(handle string) string {
	if strings.HasPrefix(handle, "http") {
		return handle
	}
	for _, prefix := range []string{"@", "c/", "user/", "channel/"} {
		if strings.HasPrefix(handle, prefix) {
			return r.baseURL + "/" + handle
		}
	}
	return r.baseURL + "/@" + handle
}

// extractChannelID applies the extraction strategies in a fixed order; the
// first match wins. Structured lookups (meta tag, canonical link) go through
// goquery, the embedded-JSON fallbacks are plain regexes over the raw page.
func extractChannelID(html []byte) (string, bool) {
	strategies := []func([]byte) (string, bool){
		metaIdentifier,
		externalID,
		canonicalLink,
		feedBackref,
		headerChannelID,
	}

	for _, strategy := range strategies {
		if id, ok := strategy(html); ok {
			return id, true
		}
	}

	return "", false
}

func metaIdentifier(html []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", false
	}

	content, exists := doc.Find(`meta[itemprop="identifier"]`).First().Attr("content")
	if !exists || !channelIDRe.MatchString(content) {
		return "", false
	}
	return content, true
}

func externalID(html []byte) (string, bool) {
	m := externalIDRe.FindSubmatch(html)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

func canonicalLink(html []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", false
	}

	href, exists := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !exists {
		return "", false
	}

	m := canonicalRe.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func feedBackref(html []byte) (string, bool) {
	m := feedBackrefRe.FindSubmatch(html)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// headerChannelID is the last resort: a channelId inside the page's header
// JSON blob. Only the first stretch of the blob is searched so unrelated
// channel references elsewhere on the page cannot match.
func headerChannelID(html []byte) (string, bool) {
	header := headerBlobRe.FindSubmatch(html)
	if header == nil {
		return "", false
	}

	m := headerIDRe.FindSubmatch(header[1])
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}
