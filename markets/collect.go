package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// minVolume: below this, market odds are too thin to be a signal.
	minVolume = 5000

	// marketsPerCategory caps each category in the snapshot.
	marketsPerCategory = 8

	// searchBatchSize bounds concurrent API searches.
	searchBatchSize = 4
)

// Market is the extracted, display-ready form of a prediction market. The
// JSON keys match what the odds page already reads.
type Market struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Pct      int    `json:"pct"`
	Volume   int    `json:"volume"`
	EndDate  string `json:"endDate,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

// Snapshot is the on-disk shape for the odds page.
type Snapshot struct {
	Updated      time.Time           `json:"updated"`
	TotalMarkets int                 `json:"totalMarkets"`
	Categories   map[string][]Market `json:"categories"`
}

// Searcher runs one keyword search. *Client satisfies it.
type Searcher interface {
	SearchEvents(ctx context.Context, query string) ([]Event, error)
}

// Pacer throttles between search batches; *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Collector fans searches out in fixed-size batches and folds the hits into
// categorized, deduplicated market lists.
type Collector struct {
	searcher Searcher
	searches []Search
	pacer    Pacer
	now      func() time.Time
	logger   *slog.Logger
}

type CollectorOptions struct {
	Searcher Searcher
	Searches []Search
	Pacer    Pacer
	Now      func() time.Time
	Logger   *slog.Logger
}

func NewCollector(opts CollectorOptions) *Collector {
	if opts.Searches == nil {
		opts.Searches = DefaultSearches()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{
		searcher: opts.Searcher,
		searches: opts.Searches,
		pacer:    opts.Pacer,
		now:      opts.Now,
		logger:   opts.Logger.With("component", "markets"),
	}
}

type searchHit struct {
	category string
	query    string
	events   []Event
	err      error
}

// Collect runs every search and builds the snapshot. Individual search
// failures are logged and skipped; Collect itself only reflects what
// succeeded.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	var hits []searchHit

	for start := 0; start < len(c.searches); start += searchBatchSize {
		end := start + searchBatchSize
		if end > len(c.searches) {
			end = len(c.searches)
		}
		batch := c.searches[start:end]

		results := make([]searchHit, len(batch))
		var wg sync.WaitGroup
		for i, search := range batch {
			wg.Add(1)
			go func(i int, search Search) {
				defer wg.Done()
				events, err := c.searcher.SearchEvents(ctx, search.Query)
				results[i] = searchHit{
					category: search.Category,
					query:    search.Query,
					events:   events,
					err:      err,
				}
			}(i, search)
		}
		wg.Wait()
		hits = append(hits, results...)

		if end < len(c.searches) && c.pacer != nil {
			if err := c.pacer.Wait(ctx); err != nil {
				c.logger.Debug("pacing interrupted", "error", err)
			}
		}
	}

	succeeded := 0
	seen := make(map[string]bool)
	categories := make(map[string][]Market)
	for _, search := range c.searches {
		if _, ok := categories[search.Category]; !ok {
			categories[search.Category] = []Market{}
		}
	}

	for _, hit := range hits {
		if hit.err != nil {
			c.logger.Warn("market search failed", "query", hit.query, "error", hit.err)
			continue
		}
		succeeded++
		for _, evt := range hit.events {
			for _, market := range ExtractMarkets(evt) {
				if seen[market.ID] {
					continue
				}
				seen[market.ID] = true
				categories[hit.category] = append(categories[hit.category], market)
			}
		}
	}

	total := 0
	for category, list := range categories {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Volume > list[j].Volume })
		if len(list) > marketsPerCategory {
			list = list[:marketsPerCategory]
		}
		categories[category] = list
		total += len(list)
	}

	c.logger.Info("market collection finished",
		"queries_ok", succeeded,
		"queries_total", len(c.searches),
		"markets", total)

	return Snapshot{
		Updated:      c.now(),
		TotalMarkets: total,
		Categories:   categories,
	}
}

// Relevant rejects questions that match the blocklist. Anything else is
// trusted because the search queries are already ag-focused.
func Relevant(question string) bool {
	lowered := strings.ToLower(question)
	for _, blocked := range blocklist {
		if strings.Contains(lowered, blocked) {
			return false
		}
	}
	return true
}

// ExtractMarkets pulls the usable markets out of one event: open, relevant,
// with a meaningful yes-probability and enough volume to trust.
func ExtractMarkets(evt Event) []Market {
	var out []Market
	for _, raw := range evt.Markets {
		if raw.Closed {
			continue
		}

		question := raw.Question
		if question == "" {
			question = evt.Title
		}
		if !Relevant(question) {
			continue
		}

		pct, ok := yesPercent(raw)
		if !ok || pct <= 0 || pct >= 100 {
			continue
		}

		volume := rawVolume(raw)
		if volume < minVolume {
			continue
		}

		id := raw.ConditionID
		if id == "" {
			id = raw.ID
		}
		if id == "" {
			id = fmt.Sprintf("%s-%d", evt.Slug, len(out))
		}

		endDate := raw.EndDate
		if endDate == "" {
			endDate = evt.EndDate
		}

		out = append(out, Market{
			ID:       id,
			Question: question,
			Pct:      pct,
			Volume:   int(math.Round(volume)),
			EndDate:  endDate,
			Slug:     evt.Slug,
		})
	}
	return out
}

// yesPercent reads the yes-outcome probability. OutcomePrices arrives as a
// JSON-encoded array of decimal strings; the last trade price is the backup.
func yesPercent(raw RawMarket) (int, bool) {
	if raw.OutcomePrices != "" {
		var prices []string
		if err := json.Unmarshal([]byte(raw.OutcomePrices), &prices); err != nil || len(prices) == 0 {
			return 0, false
		}
		yes, err := strconv.ParseFloat(prices[0], 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(yes * 100)), true
	}
	if raw.LastTradePrice > 0 {
		return int(math.Round(raw.LastTradePrice * 100)), true
	}
	return 0, false
}

func rawVolume(raw RawMarket) float64 {
	if raw.Volume != "" {
		if v, err := strconv.ParseFloat(raw.Volume, 64); err == nil {
			return v
		}
	}
	return raw.VolumeNum
}
