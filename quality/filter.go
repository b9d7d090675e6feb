// Package quality screens community-sourced items before they are merged
// with institutional sources. Institutional feeds are curated upstream;
// community feeds are not, so they get spam rejection, a per-source cap, and
// a minimum engagement score.
package quality

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/agsist/agfeed/news"
)

// Scorer looks up an external engagement signal for an item's link.
type Scorer interface {
	Score(ctx context.Context, link string) (int, error)
}

// Pacer gates successive lookups so the secondary service is not hammered.
// *rate.Limiter satisfies this.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Rules holds the data-driven rejection criteria.
type Rules struct {
	// PlaceholderMarkers are exact titles left behind by moderation.
	PlaceholderMarkers []string
	// BlockedPhrases reject promotional or off-topic titles on substring
	// match (case-insensitive).
	BlockedPhrases []string
	MinTitleLen    int
	PerSourceCap   int
	MinScore       int
}

// DefaultRules returns the production rejection criteria.
func DefaultRules() Rules {
	return Rules{
		PlaceholderMarkers: []string{"[removed]", "[deleted]"},
		BlockedPhrases: []string{
			// Promotional phrasing
			"click here", "buy now", "promo code", "discount code",
			"free trial", "% off", "check out my", "subscribe to my",
			// Off-topic for an agricultural feed
			"crypto", "bitcoin", "nft", "giveaway", "onlyfans",
		},
		MinTitleLen:  15,
		PerSourceCap: 2,
		MinScore:     3,
	}
}

// Filter applies the community-content rules to one batch of items.
type Filter struct {
	scorer Scorer
	pacer  Pacer
	rules  Rules
	logger *slog.Logger
}

// New builds a filter. A nil pacer disables pacing (tests); a nil logger
// discards diagnostics.
func New(scorer Scorer, pacer Pacer, rules Rules, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Filter{scorer: scorer, pacer: pacer, rules: rules, logger: logger}
}

// Apply screens the batch in order, short-circuiting per item: placeholder
// and blocked-phrase titles first, then the title-length floor, then the
// per-source cap (checked before the engagement lookup so capped sources
// never cost a network call), then the engagement threshold. Accepted items
// are annotated with their observed score. Lookup failures score as zero.
// Every rejection is a dropped item, not an error.
func (f *Filter) Apply(ctx context.Context, items []news.Item) []news.Item {
	accepted := make([]news.Item, 0, len(items))
	perSource := make(map[string]int)

	for _, item := range items {
		if reason := f.rejectByTitle(item.Title); reason != "" {
			f.logger.Debug("rejected community item", "title", item.Title, "reason", reason)
			continue
		}

		if perSource[item.Source] >= f.rules.PerSourceCap {
			f.logger.Debug("rejected community item", "title", item.Title, "reason", "source cap")
			continue
		}

		// Pace unconditionally before each lookup, whatever its outcome.
		if f.pacer != nil {
			if err := f.pacer.Wait(ctx); err != nil {
				return accepted
			}
		}

		score := 0
		if f.scorer != nil {
			s, err := f.scorer.Score(ctx, item.Link)
			if err != nil {
				f.logger.Debug("engagement lookup failed", "link", item.Link, "error", err)
			} else {
				score = s
			}
		}

		if score < f.rules.MinScore {
			f.logger.Debug("rejected community item", "title", item.Title, "reason", "low engagement", "score", score)
			continue
		}

		item.EngagementScore = score
		perSource[item.Source]++
		accepted = append(accepted, item)
	}

	return accepted
}

func (f *Filter) rejectByTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	for _, marker := range f.rules.PlaceholderMarkers {
		if trimmed == marker {
			return "placeholder"
		}
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range f.rules.BlockedPhrases {
		if strings.Contains(lower, phrase) {
			return "blocked phrase"
		}
	}

	if utf8.RuneCountInString(trimmed) < f.rules.MinTitleLen {
		return "short title"
	}

	return ""
}
