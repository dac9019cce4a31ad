package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/cfg"
	"github.com/CrSamson/my-ai-news-aggregator/app/config"
	"github.com/CrSamson/my-ai-news-aggregator/app/enrich"
	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
	"github.com/CrSamson/my-ai-news-aggregator/app/report"
	"github.com/CrSamson/my-ai-news-aggregator/app/runner"
	"github.com/CrSamson/my-ai-news-aggregator/app/sources"
	"github.com/CrSamson/my-ai-news-aggregator/app/youtube"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("AI News Aggregator starting", "version", appCfg.Version, "window_hours", appCfg.Hours)

	srcConfig, err := config.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Sources configuration loaded", "file", appCfg.SourcesFile, "sources", srcConfig.SourceCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := runner.New(buildSources(appCfg, srcConfig), runner.Options{
		Hours:            appCfg.Hours,
		FetchContent:     appCfg.FetchContent,
		FetchTranscripts: !appCfg.SkipTranscripts,
	})

	rep, err := run.Run(ctx)
	if err != nil {
		slog.Error("Aggregation run failed", "error", err)
		os.Exit(1)
	}

	if appCfg.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rep); err != nil {
			slog.Error("Failed to encode report", "error", err)
			os.Exit(1)
		}
		return
	}

	report.WriteSummary(os.Stdout, rep)
}

func buildSources(appCfg *cfg.Cfg, srcConfig *config.Sources) []sources.Source {
	client := feed.NewClient(
		feed.WithTimeout(time.Duration(appCfg.Timeout)*time.Second),
		feed.WithUserAgent(appCfg.UserAgent),
		feed.WithMaxAttempts(appCfg.MaxAttempts),
	)
	parser := feed.NewParser()
	extractor := enrich.NewExtractor(client)

	built := make([]sources.Source, 0, srcConfig.SourceCount())

	for _, article := range srcConfig.Articles {
		built = append(built, sources.NewArticleSource(
			article.Name, article.Feeds, article.FloorToDay, client, parser, extractor))
	}

	for _, news := range srcConfig.News {
		src, err := sources.NewCategorySource(news.Name, news.Feeds, news.Categories, client, parser)
		if err != nil {
			// Unknown categories are caught by config validation; reaching
			// this means the config and constructor disagree.
			slog.Warn("Skipping news source", "source", news.Name, "error", err)
			continue
		}
		built = append(built, src)
	}

	if len(srcConfig.YouTube.Channels) > 0 {
		resolver := youtube.NewResolver(client)
		transcripts := youtube.NewTranscriptClient(client, appCfg.Languages)
		built = append(built, sources.NewVideoSource(
			"youtube", srcConfig.YouTube.Channels, resolver, transcripts, client, parser))
	}

	return built
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
