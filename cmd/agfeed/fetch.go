package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/agsist/agfeed/config"
	"github.com/agsist/agfeed/feed"
	"github.com/agsist/agfeed/pipeline"
	"github.com/agsist/agfeed/quality"
	"github.com/agsist/agfeed/sources"
	"github.com/agsist/agfeed/summarize"
)

func handleFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path (overrides AGFEED_CONFIG)")
	output := fs.String("output", "", "snapshot path (overrides config)")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *output != "" {
		cfg.Output = *output
	}

	logger := newLogger(*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feedSources := loadSources(cfg, logger)

	filterRules := quality.DefaultRules()
	filterRules.MinScore = cfg.Quality.MinScore
	filterRules.PerSourceCap = cfg.Quality.PerSourceCap
	filter := quality.New(
		quality.NewLinkScorer(0),
		pacer(cfg.Quality.Pacing.Std()),
		filterRules,
		logger,
	)

	var generator summarize.Generator
	if cfg.APIKey != "" {
		generator = summarize.NewClient(summarize.ClientConfig{
			Endpoint:  cfg.Summaries.Endpoint,
			Model:     cfg.Summaries.Model,
			APIKey:    cfg.APIKey,
			MaxTokens: cfg.Summaries.MaxTokens,
		})
	} else {
		logger.Warn("no API key configured, summaries fall back to descriptions")
	}

	summarizer := summarize.New(summarize.Options{
		Generator:  generator,
		Articles:   summarize.NewArticleFetcher(cfg.Summaries.ArticleTimeout.Std()),
		GenPacer:   pacer(cfg.Summaries.Pacing.Std()),
		FetchPacer: pacer(cfg.Summaries.ArticlePacing.Std()),
		Budget:     cfg.Summaries.Budget,
		Logger:     logger,
	})

	p := pipeline.New(pipeline.Options{
		Fetcher:    feed.NewFetcher(cfg.Feed.Timeout.Std()),
		Filter:     filter,
		Summarizer: summarizer,
		FetchPacer: pacer(cfg.Feed.Pacing.Std()),
		Sources:    feedSources,
		OutputPath: cfg.Output,
		MaxItems:   cfg.MaxItems,
		CacheTTL:   cfg.Summaries.CacheTTL.Std(),
		Logger:     logger,
	})

	snap, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: pipeline run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d items from %d/%d feeds -> %s\n",
		len(snap.Items), snap.SuccessCount, snap.FeedCount, cfg.Output)
}

func loadConfig(path string) config.Config {
	var cfg config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadSources merges operator-added sources over the built-in feed list when
// a sources database is configured.
func loadSources(cfg config.Config, logger *slog.Logger) []feed.FeedSource {
	if cfg.SourcesDSN == "" {
		return feed.DefaultSources()
	}

	store, err := sources.NewSourceStore(cfg.SourcesDSN)
	if err != nil {
		logger.Warn("sources database unavailable, using built-in feeds", "error", err)
		return feed.DefaultSources()
	}
	defer store.Close()

	stored, err := store.ListEnabled()
	if err != nil {
		logger.Warn("listing sources failed, using built-in feeds", "error", err)
		return feed.DefaultSources()
	}
	return sources.MergeWithDefaults(stored)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func pacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
