package news

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Category classifies a feed source and the items it produces.
type Category string

const (
	CategoryCommunity  Category = "community"
	CategoryGovernment Category = "government"
	CategoryUniversity Category = "university"
	CategoryIndustry   Category = "industry"
	CategoryMarkets    Category = "markets"
	CategoryWeather    Category = "weather"
)

// Item represents a single news item produced by one pipeline run. Items are
// created fresh on every run and never mutated after they are persisted; the
// previous run's persisted items serve only as a read-only source of cached
// summaries.
type Item struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Link               string    `json:"link"`
	Description        string    `json:"description"`
	PublishedAt        time.Time `json:"published_at"`
	Source             string    `json:"source"`
	Category           Category  `json:"category"`
	Icon               string    `json:"icon,omitempty"`
	ThumbnailURL       string    `json:"thumbnail,omitempty"`
	EngagementScore    int       `json:"engagement_score,omitempty"`
	Summary            string    `json:"summary"`
	SummaryGeneratedAt time.Time `json:"summary_generated_at"`
}

// idMaxLen bounds the encoded link identifier, matching the stored id width.
const idMaxLen = 20

// ItemID derives a stable identifier from an item's canonical link. Items
// without a link get a random identifier instead, which means they carry a
// fresh id on every run and are never matched across runs. That is the
// intended behavior for link-less items; do not add cross-run identity here.
func ItemID(link string) string {
	if link == "" {
		return uuid.NewString()
	}
	enc := base64.StdEncoding.EncodeToString([]byte(link))
	if len(enc) > idMaxLen {
		enc = enc[:idMaxLen]
	}
	return enc
}

// Truncate caps s at max runes. It does not add an ellipsis; use Ellipsize
// where the shortening should be visible to readers.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Ellipsize caps s at max runes, appending "..." only when the input was
// actually shortened.
func Ellipsize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
