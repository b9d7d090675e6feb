package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FeedLink is a syndication feed advertised by a site page.
type FeedLink struct {
	URL   string
	Title string
	Type  string
}

// Discoverer finds the feeds a site page advertises, so operators can point
// "sources add" at a homepage instead of hunting for the feed URL.
type Discoverer struct {
	client *http.Client
}

func NewDiscoverer(timeout time.Duration) *Discoverer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Discoverer{client: &http.Client{Timeout: timeout}}
}

var feedLinkTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/feed+json": true,
}

// Discover fetches pageURL and returns the feed links declared in its head,
// resolved to absolute URLs and deduplicated in document order.
func (d *Discoverer) Discover(ctx context.Context, pageURL string) ([]FeedLink, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build discovery request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var links []FeedLink
	seen := make(map[string]bool)
	doc.Find("link[rel='alternate']").Each(func(_ int, sel *goquery.Selection) {
		linkType := strings.ToLower(strings.TrimSpace(sel.AttrOr("type", "")))
		if !feedLinkTypes[linkType] {
			return
		}
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		abs := resolved.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, FeedLink{
			URL:   abs,
			Title: strings.TrimSpace(sel.AttrOr("title", "")),
			Type:  linkType,
		})
	})

	return links, nil
}
