// Package enrich fetches the full body of an article and converts it to
// markdown text.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-shiori/go-readability"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

type Extractor struct {
	client *feed.Client
}

func NewExtractor(client *feed.Client) *Extractor {
	return &Extractor{client: client}
}

// Run fetches the page at pageURL, extracts the readable article and returns
// it as markdown. Callers treat any error as "no body": the entry is kept
// with an empty enrichment field.
func (e *Extractor) Run(ctx context.Context, pageURL string) (string, error) {
	data, err := e.client.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}

	parsedURL, _ := url.Parse(pageURL)

	article, err := readability.FromReader(bytes.NewReader(data), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("no content extracted from %s", pageURL)
	}

	markdown, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		// Extracted HTML that will not convert still has usable text.
		markdown = article.TextContent
	}

	markdown = strings.TrimSpace(markdown)

	slog.Debug("Content extracted",
		"url", pageURL,
		"title", article.Title,
		"content_length", len(markdown))

	return markdown, nil
}
