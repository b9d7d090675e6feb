package feed

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// The fixed set of named entities feeds actually emit in titles and
	// descriptions. Anything more exotic passes through untouched.
	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// Normalize turns a raw markup fragment into plain text: tags stripped, the
// common named entities decoded, runs of whitespace collapsed to single
// spaces, and the result trimmed. Pure, and idempotent except when decoding
// entities produces new markup ("&lt;b&gt;" becomes "<b>", which a second
// pass would strip); tags are stripped before entities are decoded so
// escaped markup survives as visible text.
func Normalize(raw string) string {
	text := tagPattern.ReplaceAllString(raw, "")
	text = entityReplacer.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
