package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/agsist/agfeed/feed"
	"github.com/agsist/agfeed/news"
)

const (
	// A browser-like identifier reduces blocking on article pages.
	articleUserAgent = "Mozilla/5.0 (compatible; agfeed/1.0; +https://agsist.com)"

	// bodyCharBudget caps extracted body text to bound downstream token cost.
	bodyCharBudget = 3000

	// minHeuristicLen: a heuristic's output only counts if the cleaned text
	// reaches this length.
	minHeuristicLen = 100

	maxParagraphs = 10
)

// bodyHeuristics are tried in order against the parsed page; the first one
// whose normalized text clears minHeuristicLen wins. Each heuristic is total.
var bodyHeuristics = []func(*goquery.Document) string{
	func(doc *goquery.Document) string { return doc.Find("article").First().Text() },
	func(doc *goquery.Document) string { return doc.Find("main").First().Text() },
	func(doc *goquery.Document) string {
		return doc.Find("div[class*='content'], div[class*='article']").First().Text()
	},
	firstParagraphs,
	metaDescription,
}

// ArticleFetcher retrieves a full article page and extracts its body text for
// summarization input.
type ArticleFetcher struct {
	client *http.Client
}

// NewArticleFetcher builds a fetcher with the given per-request timeout.
func NewArticleFetcher(timeout time.Duration) *ArticleFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ArticleFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchBody retrieves pageURL and runs the structural heuristics against it.
// The result is plain text capped at bodyCharBudget. An error means no
// heuristic produced usable text (or the page was unreachable); the caller
// falls back to the feed description.
func (a *ArticleFetcher) FetchBody(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build article request: %w", err)
	}
	req.Header.Set("User-Agent", articleUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch article: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse article page: %w", err)
	}

	return ExtractBody(doc)
}

// ExtractBody applies the ordered heuristics to an already-parsed page.
func ExtractBody(doc *goquery.Document) (string, error) {
	for _, heuristic := range bodyHeuristics {
		text := feed.Normalize(heuristic(doc))
		if len(text) >= minHeuristicLen {
			return news.Truncate(text, bodyCharBudget), nil
		}
	}
	return "", fmt.Errorf("no extractable article body")
}

func firstParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		parts = append(parts, sel.Text())
		return i < maxParagraphs-1
	})
	return strings.Join(parts, " ")
}

func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[name='description']").Attr("content"); ok && content != "" {
		return content
	}
	if content, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
		return content
	}
	return ""
}
