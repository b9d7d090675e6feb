package quality

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLinkScorer_ParsesScore verifies the ".json" endpoint shape is parsed
// down to the post score.
func TestLinkScorer_ParsesScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/farming/comments/abc.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"data":{"children":[{"data":{"score":42}}]}}]`))
	}))
	defer server.Close()

	s := NewLinkScorer(5 * time.Second)

	score, err := s.Score(context.Background(), server.URL+"/r/farming/comments/abc")

	require.NoError(t, err)
	assert.Equal(t, 42, score)
}

// TestLinkScorer_TrailingSlashNormalized verifies ".json" is appended to the
// canonical path, not after a trailing slash.
func TestLinkScorer_TrailingSlashNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/farming/comments/abc.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"data":{"children":[{"data":{"score":7}}]}}]`))
	}))
	defer server.Close()

	s := NewLinkScorer(5 * time.Second)

	score, err := s.Score(context.Background(), server.URL+"/r/farming/comments/abc/")

	require.NoError(t, err)
	assert.Equal(t, 7, score)
}

// TestLinkScorer_NonSuccessIsError verifies lookup failures surface as
// errors for the filter to absorb.
func TestLinkScorer_NonSuccessIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewLinkScorer(5 * time.Second)

	_, err := s.Score(context.Background(), server.URL+"/r/x/comments/y")

	assert.Error(t, err)
}

// TestLinkScorer_EmptyBodyIsError verifies a listing without post data is an
// error rather than a silent zero.
func TestLinkScorer_EmptyBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	s := NewLinkScorer(5 * time.Second)

	_, err := s.Score(context.Background(), server.URL+"/r/x/comments/y")

	assert.Error(t, err)
}

// TestLinkScorer_EmptyLink verifies link-less items cannot be scored.
func TestLinkScorer_EmptyLink(t *testing.T) {
	s := NewLinkScorer(5 * time.Second)

	_, err := s.Score(context.Background(), "")

	assert.Error(t, err)
}
