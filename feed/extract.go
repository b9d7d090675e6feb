package feed

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/agsist/agfeed/news"
)

const (
	// MaxItemsPerSource caps how many items one feed may contribute per run.
	MaxItemsPerSource = 5

	// TitleMaxLen and DescriptionMaxLen are truncation caps, not rejection
	// thresholds.
	TitleMaxLen       = 200
	DescriptionMaxLen = 500

	// minTitleLen: items with a missing or near-empty title are discarded.
	minTitleLen = 5

	communityLinkBase = "https://www.reddit.com"
)

var imagePattern = regexp.MustCompile(`(?i)https?://[^"'\s<>]+\.(?:jpg|jpeg|png|gif|webp)`)

// Each field is extracted by an ordered list of strategies; the first one
// producing a non-empty value wins. Every strategy is total: it may return
// "" but never fails. gofeed has already folded the item-based and
// entry-based dialects into one shape, so the strategies only cover the
// fallback chains between fields.
type fieldStrategy func(*gofeed.Item) string

var titleStrategies = []fieldStrategy{
	func(it *gofeed.Item) string { return it.Title },
}

var linkStrategies = []fieldStrategy{
	func(it *gofeed.Item) string { return it.Link },
	func(it *gofeed.Item) string {
		if len(it.Links) > 0 {
			return it.Links[0]
		}
		return ""
	},
}

var descriptionStrategies = []fieldStrategy{
	func(it *gofeed.Item) string { return it.Description },
	func(it *gofeed.Item) string { return it.Content },
}

var thumbnailStrategies = []fieldStrategy{
	mediaThumbnail,
	func(it *gofeed.Item) string {
		if it.Image != nil {
			return it.Image.URL
		}
		return ""
	},
	imageEnclosure,
	func(it *gofeed.Item) string { return imagePattern.FindString(it.Content) },
	func(it *gofeed.Item) string { return imagePattern.FindString(it.Description) },
}

// dateStrategies yield the first parseable timestamp; the extractor falls
// back to fetch time when none applies.
var dateStrategies = []func(*gofeed.Item) *time.Time{
	func(it *gofeed.Item) *time.Time { return it.PublishedParsed },
	func(it *gofeed.Item) *time.Time { return it.UpdatedParsed },
}

// ExtractItems parses a raw feed document into partially-populated news
// items, at most MaxItemsPerSource of them. Re-extracting the same document
// yields the same items (link-less items excepted: their fallback ids are
// random by design). Parse failures yield zero items, never an error: a
// malformed source simply contributes nothing to the run.
func ExtractItems(doc *RawDocument, now time.Time) []news.Item {
	parsed, err := gofeed.NewParser().ParseString(doc.Body)
	if err != nil || parsed == nil {
		return nil
	}

	src := doc.Source
	items := make([]news.Item, 0, MaxItemsPerSource)
	for _, entry := range parsed.Items {
		if len(items) >= MaxItemsPerSource {
			break
		}

		title := Normalize(firstNonEmpty(titleStrategies, entry))
		if utf8.RuneCountInString(title) < minTitleLen {
			continue
		}

		link := rewriteCommunityLink(strings.TrimSpace(firstNonEmpty(linkStrategies, entry)), src)

		publishedAt := now
		for _, strat := range dateStrategies {
			if ts := strat(entry); ts != nil {
				publishedAt = *ts
				break
			}
		}

		items = append(items, news.Item{
			ID:           news.ItemID(link),
			Title:        news.Truncate(title, TitleMaxLen),
			Link:         link,
			Description:  news.Truncate(Normalize(firstNonEmpty(descriptionStrategies, entry)), DescriptionMaxLen),
			PublishedAt:  publishedAt,
			Source:       src.Name,
			Category:     src.Category,
			Icon:         src.Icon,
			ThumbnailURL: firstNonEmpty(thumbnailStrategies, entry),
		})
	}

	return items
}

func firstNonEmpty(strategies []fieldStrategy, it *gofeed.Item) string {
	for _, strat := range strategies {
		if v := strat(it); v != "" {
			return v
		}
	}
	return ""
}

// rewriteCommunityLink makes community-platform relative links absolute.
func rewriteCommunityLink(link string, src FeedSource) string {
	if src.Community && link != "" && strings.HasPrefix(link, "/") {
		return communityLinkBase + link
	}
	return link
}

func mediaThumbnail(it *gofeed.Item) string {
	media, ok := it.Extensions["media"]
	if !ok {
		return ""
	}
	for _, thumb := range media["thumbnail"] {
		if url := thumb.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

func imageEnclosure(it *gofeed.Item) string {
	for _, enc := range it.Enclosures {
		if strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
