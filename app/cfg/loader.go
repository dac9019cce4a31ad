package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Aggregation window
	Hours int `long:"hours" env:"HOURS" default:"24" description:"Look-back window in hours"`

	// Sources configuration
	SourcesFile string `long:"sources" env:"SOURCES_FILE" default:"./sources.yml" description:"Path to the sources configuration file"`

	// Enrichment
	FetchContent    bool   `long:"fetch-content" env:"FETCH_CONTENT" description:"Download full article bodies as markdown"`
	SkipTranscripts bool   `long:"skip-transcripts" env:"SKIP_TRANSCRIPTS" description:"Do not download video transcripts"`
	Languages       string `long:"languages" env:"LANGUAGES" default:"en,en-US,en-GB" description:"Transcript language priority, comma-separated"`

	// HTTP behavior
	Timeout     int    `long:"timeout" env:"TIMEOUT" default:"10" description:"Per-request timeout in seconds"`
	MaxAttempts int    `long:"max-attempts" env:"MAX_ATTEMPTS" default:"1" description:"Fetch attempts per request (retries on transient errors)"`
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"AI News Aggregator/1.0" description:"User agent string for HTTP requests"`

	// Output
	JSON  bool `long:"json" env:"JSON" description:"Print the report as JSON instead of a text summary"`
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %d", raw.Hours)
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}

	cfg := &Cfg{
		Hours:           raw.Hours,
		SourcesFile:     raw.SourcesFile,
		FetchContent:    raw.FetchContent,
		SkipTranscripts: raw.SkipTranscripts,
		Languages:       splitLanguages(raw.Languages),
		Timeout:         raw.Timeout,
		MaxAttempts:     raw.MaxAttempts,
		UserAgent:       raw.UserAgent,
		JSON:            raw.JSON,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func splitLanguages(raw string) []string {
	parts := strings.Split(raw, ",")
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			languages = append(languages, part)
		}
	}
	return languages
}
