package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestItemID_DeterministicForLink verifies the same link always yields the
// same identifier.
func TestItemID_DeterministicForLink(t *testing.T) {
	link := "https://example.com/articles/corn-prices"

	first := ItemID(link)
	second := ItemID(link)

	assert.Equal(t, first, second, "id must be stable for a given link")
	assert.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), 20)
}

// TestItemID_DistinctLinks verifies different links yield different ids.
func TestItemID_DistinctLinks(t *testing.T) {
	a := ItemID("https://example.com/a")
	b := ItemID("https://example.com/b")

	assert.NotEqual(t, a, b)
}

// TestItemID_EmptyLinkIsRandom verifies link-less items get a fresh id each
// time, so they are never matched across runs.
func TestItemID_EmptyLinkIsRandom(t *testing.T) {
	first := ItemID("")
	second := ItemID("")

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second, "link-less ids must not collide across calls")
}

// TestTruncate verifies rune-safe truncation without an ellipsis.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "日本", Truncate("日本語", 2), "truncation must not split multibyte runes")
}

// TestEllipsize verifies the ellipsis is only added when text was shortened.
func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", Ellipsize("short", 10))
	assert.Equal(t, "abc...", Ellipsize("abcdef", 3))
}
