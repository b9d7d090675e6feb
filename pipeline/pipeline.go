// Package pipeline orchestrates a full ingestion run: fetch every feed,
// extract and filter items, rank them, attach summaries, and persist the
// snapshot.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agsist/agfeed/feed"
	"github.com/agsist/agfeed/news"
	"github.com/agsist/agfeed/store"
	"github.com/agsist/agfeed/summarize"
)

// FeedFetcher retrieves one feed document. *feed.Fetcher satisfies it.
type FeedFetcher interface {
	Fetch(ctx context.Context, src feed.FeedSource) (*feed.RawDocument, error)
}

// CommunityFilter screens community items. *quality.Filter satisfies it.
type CommunityFilter interface {
	Apply(ctx context.Context, items []news.Item) []news.Item
}

// SummaryRunner attaches summaries in place. *summarize.Summarizer satisfies
// it.
type SummaryRunner interface {
	Run(ctx context.Context, items []news.Item, cache map[string]news.CacheEntry) summarize.Stats
}

// Pacer throttles feed fetches; *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Options wires the pipeline's collaborators. Fetcher, Summarizer, Sources,
// and OutputPath are required; the rest have usable defaults.
type Options struct {
	Fetcher    FeedFetcher
	Filter     CommunityFilter
	Summarizer SummaryRunner
	FetchPacer Pacer
	Sources    []feed.FeedSource
	OutputPath string
	MaxItems   int
	CacheTTL   time.Duration
	Now        func() time.Time
	Logger     *slog.Logger
}

type Pipeline struct {
	fetcher    FeedFetcher
	filter     CommunityFilter
	summarizer SummaryRunner
	fetchPacer Pacer
	sources    []feed.FeedSource
	outputPath string
	maxItems   int
	cacheTTL   time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

func New(opts Options) *Pipeline {
	if opts.MaxItems <= 0 {
		opts.MaxItems = 100
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 48 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		fetcher:    opts.Fetcher,
		filter:     opts.Filter,
		summarizer: opts.Summarizer,
		fetchPacer: opts.FetchPacer,
		sources:    opts.Sources,
		outputPath: opts.OutputPath,
		maxItems:   opts.MaxItems,
		cacheTTL:   opts.CacheTTL,
		now:        opts.Now,
		logger:     opts.Logger.With("component", "pipeline"),
	}
}

// Run executes one full ingestion pass and returns the snapshot it persisted.
// A failing feed is logged and skipped; only writing the snapshot is fatal. If
// ctx is canceled the run stops without persisting anything.
func (p *Pipeline) Run(ctx context.Context) (store.Snapshot, error) {
	started := p.now()

	prev, err := store.Load(p.outputPath)
	if err != nil {
		// A corrupt prior snapshot only costs us the summary cache.
		p.logger.Warn("previous snapshot unreadable, starting fresh", "error", err)
		prev = store.Snapshot{}
	}
	cache := news.BuildSummaryCache(prev.Items, started, p.cacheTTL)
	p.logger.Info("run started",
		"sources", len(p.sources), "cached_summaries", len(cache))

	stats := make(map[string]int, len(p.sources))
	successCount := 0
	var community, general []news.Item

	for _, src := range p.sources {
		// An aborted run must not reach the persist step; the prior
		// snapshot stays authoritative.
		if err := ctx.Err(); err != nil {
			return store.Snapshot{}, fmt.Errorf("run aborted: %w", err)
		}

		if p.fetchPacer != nil {
			if err := p.fetchPacer.Wait(ctx); err != nil {
				p.logger.Debug("pacing interrupted", "error", err)
			}
		}

		doc, err := p.fetcher.Fetch(ctx, src)
		if err != nil {
			p.logger.Warn("feed fetch failed", "source", src.Name, "error", err)
			continue
		}

		items := feed.ExtractItems(doc, p.now())
		stats[string(src.Category)] += len(items)
		successCount++
		p.logger.Debug("feed extracted", "source", src.Name, "items", len(items))

		if src.Community {
			community = append(community, items...)
		} else {
			general = append(general, items...)
		}
	}

	if p.filter != nil {
		community = p.filter.Apply(ctx, community)
	}

	ranked := news.DedupeAndRank(append(general, community...), p.maxItems)

	var sumStats summarize.Stats
	if p.summarizer != nil {
		sumStats = p.summarizer.Run(ctx, ranked, cache)
	}

	snap := store.Snapshot{
		Items:              ranked,
		Stats:              stats,
		FeedCount:          len(p.sources),
		SuccessCount:       successCount,
		SummariesGenerated: sumStats.Generated,
		SummariesCached:    sumStats.Cached,
		Updated:            p.now(),
	}

	if err := ctx.Err(); err != nil {
		return store.Snapshot{}, fmt.Errorf("run aborted: %w", err)
	}
	if err := store.Write(p.outputPath, snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("persist snapshot: %w", err)
	}

	p.logger.Info("run finished",
		"items", len(ranked),
		"feeds_ok", successCount,
		"feeds_total", len(p.sources),
		"summaries_generated", sumStats.Generated,
		"summaries_cached", sumStats.Cached,
		"elapsed", p.now().Sub(started))

	return snap, nil
}
