package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for a malformed or empty sources file. Unlike
// per-source failures this one is fatal: a run cannot proceed without a
// source list.
var ErrInvalidConfig = errors.New("config: invalid sources configuration")

// Load reads and validates the sources configuration file.
func Load(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidConfig, path, err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	if err := validate(&sources); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return &sources, nil
}

func validate(sources *Sources) error {
	if sources.SourceCount() == 0 {
		return fmt.Errorf("no sources configured")
	}

	for i, article := range sources.Articles {
		if article.Name == "" {
			return fmt.Errorf("article source at index %d has no name", i)
		}
		if len(article.Feeds) == 0 {
			return fmt.Errorf("article source %q has no feeds", article.Name)
		}
		for _, feedURL := range article.Feeds {
			if err := validateURL(feedURL); err != nil {
				return fmt.Errorf("article source %q: %v", article.Name, err)
			}
		}
	}

	for i, news := range sources.News {
		if news.Name == "" {
			return fmt.Errorf("news source at index %d has no name", i)
		}
		if len(news.Feeds) == 0 {
			return fmt.Errorf("news source %q has no feeds", news.Name)
		}
		for category, feedURL := range news.Feeds {
			if err := validateURL(feedURL); err != nil {
				return fmt.Errorf("news source %q category %q: %v", news.Name, category, err)
			}
		}
		for _, category := range news.Categories {
			if _, ok := news.Feeds[category]; !ok {
				return fmt.Errorf("news source %q selects unknown category %q", news.Name, category)
			}
		}
	}

	for _, handle := range sources.YouTube.Channels {
		if strings.TrimSpace(handle) == "" {
			return fmt.Errorf("empty youtube channel handle")
		}
	}

	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid feed URL %q: %v", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("feed URL %q must be absolute http(s)", raw)
	}
	return nil
}
