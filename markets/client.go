// Package markets pulls agriculture-relevant prediction markets from the
// Polymarket gamma API into a snapshot the odds page reads.
package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL  = "https://gamma-api.polymarket.com"
	marketUserAgent = "agfeed/1.0 (Agricultural News Aggregator)"

	// eventsPerQuery caps results per search so one broad query cannot
	// dominate a category.
	eventsPerQuery = 8
)

// Event is a gamma API event with its nested markets.
type Event struct {
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	EndDate string      `json:"endDate"`
	Markets []RawMarket `json:"markets"`
}

// RawMarket is a market as the API returns it. OutcomePrices is a
// JSON-encoded array of decimal strings, and Volume is a decimal string;
// both quirks are handled during extraction.
type RawMarket struct {
	ID             string  `json:"id"`
	ConditionID    string  `json:"conditionId"`
	Question       string  `json:"question"`
	Closed         bool    `json:"closed"`
	OutcomePrices  string  `json:"outcomePrices"`
	LastTradePrice float64 `json:"lastTradePrice"`
	Volume         string  `json:"volume"`
	VolumeNum      float64 `json:"volumeNum"`
	EndDate        string  `json:"endDate"`
}

// Client queries the gamma events endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the production API. baseURL is overridable
// for tests.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchEvents runs one keyword search against open events.
func (c *Client) SearchEvents(ctx context.Context, query string) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/events?closed=false&limit=%d&_q=%s",
		c.baseURL, eventsPerQuery, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", marketUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %s", query, resp.Status)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode search %q: %w", query, err)
	}
	return events, nil
}
