package quality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agsist/agfeed/news"
)

// stubScorer returns a fixed score per link and counts lookups.
type stubScorer struct {
	scores map[string]int
	err    error
	calls  int
}

func (s *stubScorer) Score(_ context.Context, link string) (int, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[link], nil
}

func communityItem(title, link, source string) news.Item {
	return news.Item{Title: title, Link: link, Source: source, Category: news.CategoryCommunity}
}

// TestFilter_PlaceholderRejectedRegardlessOfScore verifies a "[removed]"
// title never survives, even with a high engagement score.
func TestFilter_PlaceholderRejectedRegardlessOfScore(t *testing.T) {
	scorer := &stubScorer{scores: map[string]int{"https://r/x": 9999}}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("[removed]", "https://r/x", "r/farming"),
	})

	assert.Empty(t, out)
	assert.Zero(t, scorer.calls, "placeholder rejection must not cost a lookup")
}

// TestFilter_PromotionalPhraseRejected verifies blocked phrases short-circuit.
func TestFilter_PromotionalPhraseRejected(t *testing.T) {
	f := New(&stubScorer{}, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Click here for the best crypto farm deal", "https://r/spam", "r/farming"),
	})

	assert.Empty(t, out)
}

// TestFilter_ShortTitleRejected verifies the 15-character title floor.
func TestFilter_ShortTitleRejected(t *testing.T) {
	scorer := &stubScorer{scores: map[string]int{"https://r/s": 50}}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Short one", "https://r/s", "r/farming"),
	})

	assert.Empty(t, out)
	assert.Zero(t, scorer.calls)
}

// TestFilter_PerSourceCapBeforeLookup verifies at most two items per source
// are accepted and that capped items never reach the scorer.
func TestFilter_PerSourceCapBeforeLookup(t *testing.T) {
	scorer := &stubScorer{scores: map[string]int{
		"https://r/1": 10, "https://r/2": 10, "https://r/3": 10,
	}}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("First long enough headline", "https://r/1", "r/farming"),
		communityItem("Second long enough headline", "https://r/2", "r/farming"),
		communityItem("Third long enough headline", "https://r/3", "r/farming"),
	})

	require.Len(t, out, 2)
	assert.Equal(t, 2, scorer.calls, "the capped third item must not trigger a lookup")
}

// TestFilter_CapIsPerSource verifies the cap does not bleed across sources.
func TestFilter_CapIsPerSource(t *testing.T) {
	scorer := &stubScorer{scores: map[string]int{
		"https://r/1": 10, "https://r/2": 10, "https://r/3": 10,
	}}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Headline from the first source", "https://r/1", "r/farming"),
		communityItem("Another from the first source", "https://r/2", "r/farming"),
		communityItem("Headline from a second source", "https://r/3", "r/cattle"),
	})

	assert.Len(t, out, 3)
}

// TestFilter_LowEngagementRejected verifies the minimum score threshold.
func TestFilter_LowEngagementRejected(t *testing.T) {
	scorer := &stubScorer{scores: map[string]int{"https://r/low": 2, "https://r/ok": 3}}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Post with too little traction", "https://r/low", "r/farming"),
		communityItem("Post with just enough traction", "https://r/ok", "r/farming"),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "https://r/ok", out[0].Link)
	assert.Equal(t, 3, out[0].EngagementScore, "accepted items carry their observed score")
}

// TestFilter_LookupFailureScoresZero verifies lookup failures reject the item
// under the default threshold instead of failing the batch.
func TestFilter_LookupFailureScoresZero(t *testing.T) {
	scorer := &stubScorer{err: errors.New("connection refused")}
	f := New(scorer, nil, DefaultRules(), nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Perfectly fine headline here", "https://r/x", "r/farming"),
	})

	assert.Empty(t, out)
}

// TestFilter_ZeroThresholdAcceptsFailedLookup verifies that with threshold 0
// a failed lookup still admits the item.
func TestFilter_ZeroThresholdAcceptsFailedLookup(t *testing.T) {
	rules := DefaultRules()
	rules.MinScore = 0
	f := New(&stubScorer{err: errors.New("boom")}, nil, rules, nil)

	out := f.Apply(context.Background(), []news.Item{
		communityItem("Perfectly fine headline here", "https://r/x", "r/farming"),
	})

	assert.Len(t, out, 1)
}

// countingPacer records how many waits the filter requested.
type countingPacer struct{ waits int }

func (p *countingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}

// TestFilter_PacesEveryLookup verifies the unconditional pacing wait happens
// once per engagement check, whatever the outcome.
func TestFilter_PacesEveryLookup(t *testing.T) {
	pacer := &countingPacer{}
	scorer := &stubScorer{scores: map[string]int{"https://r/1": 10, "https://r/2": 0}}
	f := New(scorer, pacer, DefaultRules(), nil)

	f.Apply(context.Background(), []news.Item{
		communityItem("Accepted headline goes through", "https://r/1", "r/farming"),
		communityItem("Rejected headline also paced", "https://r/2", "r/cattle"),
	})

	assert.Equal(t, 2, pacer.waits)
}
