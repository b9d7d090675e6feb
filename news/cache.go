package news

import "time"

// CacheEntry is a previously generated summary keyed by canonical link.
// Entries are reconstructed from the prior run's persisted items; there is no
// separate cache store.
type CacheEntry struct {
	Summary     string
	GeneratedAt time.Time
}

// BuildSummaryCache maps canonical links to still-valid summaries from the
// previous run. Only items that carry both a link and a summary are eligible,
// and only while the summary is younger than ttl. Pure function: the TTL
// boundary is decided against the supplied now.
func BuildSummaryCache(prev []Item, now time.Time, ttl time.Duration) map[string]CacheEntry {
	cache := make(map[string]CacheEntry)
	for _, item := range prev {
		if item.Link == "" || item.Summary == "" || item.SummaryGeneratedAt.IsZero() {
			continue
		}
		if now.Sub(item.SummaryGeneratedAt) >= ttl {
			continue
		}
		cache[item.Link] = CacheEntry{
			Summary:     item.Summary,
			GeneratedAt: item.SummaryGeneratedAt,
		}
	}
	return cache
}
