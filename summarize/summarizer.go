package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agsist/agfeed/news"
)

const (
	// DefaultBudget bounds generation-service calls per run.
	DefaultBudget = 30

	// DefaultMinContentLen: content shorter than this is not worth a
	// generation call.
	DefaultMinContentLen = 50

	fallbackMaxLen   = 200
	promptContentCap = 2000
)

// Generator produces a summary from a prompt. *Client satisfies it.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BodyFetcher retrieves article body text for a link. *ArticleFetcher
// satisfies it.
type BodyFetcher interface {
	FetchBody(ctx context.Context, pageURL string) (string, error)
}

// Pacer throttles outbound calls; *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Stats reports how each item's summary was produced in a run.
type Stats struct {
	Generated int
	Cached    int
	Fallback  int
}

// Options configures a Summarizer. A nil Generator disables generation
// entirely (every uncached item takes the fallback path), which is the
// degraded mode when no API credential is configured.
type Options struct {
	Generator     Generator
	Articles      BodyFetcher
	GenPacer      Pacer
	FetchPacer    Pacer
	Budget        int
	MinContentLen int
	Now           func() time.Time
	Logger        *slog.Logger
}

type Summarizer struct {
	gen           Generator
	articles      BodyFetcher
	genPacer      Pacer
	fetchPacer    Pacer
	budget        int
	minContentLen int
	now           func() time.Time
	logger        *slog.Logger
}

func New(opts Options) *Summarizer {
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}
	if opts.MinContentLen <= 0 {
		opts.MinContentLen = DefaultMinContentLen
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Summarizer{
		gen:           opts.Generator,
		articles:      opts.Articles,
		genPacer:      opts.GenPacer,
		fetchPacer:    opts.FetchPacer,
		budget:        opts.Budget,
		minContentLen: opts.MinContentLen,
		now:           opts.Now,
		logger:        opts.Logger.With("component", "summarizer"),
	}
}

// Run attaches a summary and timestamp to every item, in place. Resolution
// order per item: cache hit, then budget check, then generation, then the
// content fallback. Generation-service calls never exceed the budget, counting
// failed calls against it as well.
func (s *Summarizer) Run(ctx context.Context, items []news.Item, cache map[string]news.CacheEntry) Stats {
	var stats Stats
	calls := 0

	for i := range items {
		item := &items[i]

		if item.Link != "" {
			if entry, ok := cache[item.Link]; ok {
				item.Summary = entry.Summary
				item.SummaryGeneratedAt = entry.GeneratedAt
				stats.Cached++
				continue
			}
		}

		if calls >= s.budget {
			item.Summary = s.budgetFallback(item)
			item.SummaryGeneratedAt = s.now()
			stats.Fallback++
			continue
		}

		content := s.contentFor(ctx, item)

		if s.gen != nil && utf8.RuneCountInString(content) >= s.minContentLen {
			calls++
			summary, err := s.gen.Complete(ctx, buildPrompt(item, content))
			s.wait(ctx, s.genPacer)
			if err != nil {
				s.logger.Warn("summary generation failed",
					"source", item.Source, "link", item.Link, "error", err)
			} else if cleaned := stripPreamble(summary); cleaned != "" {
				item.Summary = cleaned
				item.SummaryGeneratedAt = s.now()
				stats.Generated++
				continue
			}
		}

		item.Summary = s.contentFallback(item, content)
		item.SummaryGeneratedAt = s.now()
		stats.Fallback++
	}

	return stats
}

// contentFor picks the text generation works from. Community items already
// carry their post text as the description. For the rest, a fetched article
// body replaces the description only when it is longer. Fetch failures are
// logged and absorbed.
func (s *Summarizer) contentFor(ctx context.Context, item *news.Item) string {
	content := item.Description
	if item.Category == news.CategoryCommunity || s.gen == nil || s.articles == nil || item.Link == "" {
		return content
	}

	body, err := s.articles.FetchBody(ctx, item.Link)
	s.wait(ctx, s.fetchPacer)
	if err != nil {
		s.logger.Debug("article fetch failed", "link", item.Link, "error", err)
		return content
	}
	if len(body) > len(content) {
		return body
	}
	return content
}

func (s *Summarizer) wait(ctx context.Context, p Pacer) {
	if p == nil {
		return
	}
	if err := p.Wait(ctx); err != nil {
		s.logger.Debug("pacing interrupted", "error", err)
	}
}

func buildPrompt(item *news.Item, content string) string {
	return fmt.Sprintf(`Summarize this agricultural news in exactly 2 sentences for a farmer. Be specific and practical. No fluff.

Title: %s
Source: %s
Content: %s

TL;DR:`, item.Title, item.Source, news.Truncate(content, promptContentCap))
}

// budgetFallback is used once the call budget is spent: the description when
// it carries enough signal, otherwise a source-plus-title line.
func (s *Summarizer) budgetFallback(item *news.Item) string {
	if utf8.RuneCountInString(item.Description) > s.minContentLen {
		return news.Ellipsize(item.Description, fallbackMaxLen)
	}
	return fmt.Sprintf("%s: %s", item.Source, item.Title)
}

// contentFallback is used when generation was skipped or failed.
func (s *Summarizer) contentFallback(item *news.Item, content string) string {
	if utf8.RuneCountInString(content) > s.minContentLen {
		return news.Ellipsize(content, fallbackMaxLen)
	}
	return fmt.Sprintf("%s reports: %q", item.Source, item.Title)
}

// preamblePattern matches chatty lead-ins the generation service sometimes
// prepends despite the prompt.
var preamblePattern = regexp.MustCompile(`(?i)^(here(?:'s| is)(?: a| the)?(?: brief| short| 2-sentence)? summary[:.]?|summary:|tl;dr:)\s*`)

func stripPreamble(summary string) string {
	return strings.TrimSpace(preamblePattern.ReplaceAllString(strings.TrimSpace(summary), ""))
}
