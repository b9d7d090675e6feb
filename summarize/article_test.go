package summarize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractBody_PrefersArticleElement(t *testing.T) {
	body := strings.Repeat("Soil moisture improved across the region this week. ", 5)
	doc := docFromHTML(t, `<html><body>
		<main>`+strings.Repeat("navigation junk that is also long enough to qualify here ", 5)+`</main>
		<article>`+body+`</article>
	</body></html>`)

	got, err := ExtractBody(doc)

	require.NoError(t, err)
	assert.Contains(t, got, "Soil moisture improved")
	assert.NotContains(t, got, "navigation junk")
}

func TestExtractBody_FallsThroughShortContainers(t *testing.T) {
	body := strings.Repeat("Wheat harvest is ahead of the five year average pace. ", 5)
	doc := docFromHTML(t, `<html><body>
		<article>short</article>
		<div class="post-content">`+body+`</div>
	</body></html>`)

	got, err := ExtractBody(doc)

	require.NoError(t, err)
	assert.Contains(t, got, "Wheat harvest is ahead")
}

func TestExtractBody_JoinsLeadingParagraphs(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		sb.WriteString("<p>Paragraph about crop conditions in the district today.</p>")
	}
	sb.WriteString("</body></html>")
	doc := docFromHTML(t, sb.String())

	got, err := ExtractBody(doc)

	require.NoError(t, err)
	count := strings.Count(got, "Paragraph about crop conditions")
	assert.Equal(t, maxParagraphs, count, "only the leading paragraphs are joined")
}

func TestExtractBody_MetaDescriptionLastResort(t *testing.T) {
	meta := strings.Repeat("USDA raised its corn export forecast by fifty million bushels. ", 2)
	doc := docFromHTML(t, `<html><head>
		<meta name="description" content="`+meta+`">
	</head><body><p>short</p></body></html>`)

	got, err := ExtractBody(doc)

	require.NoError(t, err)
	assert.Contains(t, got, "USDA raised its corn export forecast")
}

func TestExtractBody_NothingUsableIsError(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>tiny</p></body></html>`)

	_, err := ExtractBody(doc)

	assert.Error(t, err)
}

func TestExtractBody_CapsLength(t *testing.T) {
	doc := docFromHTML(t, `<html><body><article>`+strings.Repeat("w", 5000)+`</article></body></html>`)

	got, err := ExtractBody(doc)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), bodyCharBudget)
}

func TestArticleFetcher_FetchBody(t *testing.T) {
	body := strings.Repeat("Cover crop adoption continues to climb across the Midwest. ", 5)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, articleUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><article>` + body + `</article></body></html>`))
	}))
	defer server.Close()

	fetcher := NewArticleFetcher(0)
	got, err := fetcher.FetchBody(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, got, "Cover crop adoption")
}

func TestArticleFetcher_FetchBody_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewArticleFetcher(0)
	_, err := fetcher.FetchBody(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
