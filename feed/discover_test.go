package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_FindsAdvertisedFeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<link rel="alternate" type="application/rss+xml" title="All News" href="/rss.xml">
			<link rel="alternate" type="application/atom+xml" title="Atom" href="https://cdn.example.com/atom.xml">
			<link rel="alternate" type="text/html" href="/mobile">
			<link rel="stylesheet" href="/style.css">
		</head><body></body></html>`))
	}))
	defer server.Close()

	d := NewDiscoverer(0)
	links, err := d.Discover(context.Background(), server.URL)

	require.NoError(t, err)
	require.Len(t, links, 2, "only syndication link types count")
	assert.Equal(t, server.URL+"/rss.xml", links[0].URL, "relative hrefs resolve against the page")
	assert.Equal(t, "All News", links[0].Title)
	assert.Equal(t, "application/rss+xml", links[0].Type)
	assert.Equal(t, "https://cdn.example.com/atom.xml", links[1].URL)
}

func TestDiscover_DeduplicatesRepeatedLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<link rel="alternate" type="application/rss+xml" href="/rss.xml">
			<link rel="alternate" type="application/rss+xml" href="/rss.xml">
		</head></html>`))
	}))
	defer server.Close()

	d := NewDiscoverer(0)
	links, err := d.Discover(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestDiscover_NoFeedsIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>plain page</title></head></html>`))
	}))
	defer server.Close()

	d := NewDiscoverer(0)
	links, err := d.Discover(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestDiscover_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDiscoverer(0)
	_, err := d.Discover(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
