package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// feedUserAgent identifies the aggregator to feed hosts.
	feedUserAgent = "agfeed/1.0 (Agricultural News Aggregator)"

	feedAccept = "application/rss+xml, application/xml, text/xml, application/atom+xml, */*"

	// maxBodyBytes bounds how much of a feed response is read; syndication
	// documents past this size are almost certainly malformed.
	maxBodyBytes = 4 << 20
)

// RawDocument is the unparsed response body of one source fetch. It is
// transient: the extractor consumes it and nothing else holds on to it.
type RawDocument struct {
	Source FeedSource
	Body   string
}

// Fetcher retrieves feed documents over HTTP. Each request carries its own
// hard timeout independent of any transport default; a failure on one source
// is returned to the caller and never aborts the batch.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a single source's feed document. Any transport error,
// timeout, or non-success status yields an error scoped to this source.
func (f *Fetcher) Fetch(ctx context.Context, src FeedSource) (*RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src.Name, err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", feedAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src.Name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name, err)
	}

	return &RawDocument{Source: src, Body: string(body)}, nil
}
