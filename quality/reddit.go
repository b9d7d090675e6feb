package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const scorerUserAgent = "Mozilla/5.0 (compatible; agfeed/1.0; +https://agsist.com)"

// LinkScorer fetches an item's engagement score from the link-derived JSON
// endpoint the community platform exposes (the post URL with ".json"
// appended). Failures are the caller's to absorb: a failed lookup means a
// zero score, never an aborted batch.
type LinkScorer struct {
	client *http.Client
}

// NewLinkScorer builds a scorer with its own hard per-request timeout.
func NewLinkScorer(timeout time.Duration) *LinkScorer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LinkScorer{client: &http.Client{Timeout: timeout}}
}

// listing mirrors the slice of the platform's JSON we care about: the first
// listing's first child carries the post score.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Score int `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Score retrieves the engagement score for one post link.
func (s *LinkScorer) Score(ctx context.Context, link string) (int, error) {
	if link == "" {
		return 0, fmt.Errorf("no link to score")
	}

	endpoint := strings.TrimSuffix(link, "/") + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("User-Agent", scorerUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("score lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("score lookup: unexpected status %s", resp.Status)
	}

	var listings []listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}

	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return 0, fmt.Errorf("score response has no post data")
	}

	return listings[0].Data.Children[0].Data.Score, nil
}
