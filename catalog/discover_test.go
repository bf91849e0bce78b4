package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdavies-dev/gutenshad/core"
)

const topPageHTML = `<html><body>
<h2>Top 100 EBooks</h2>
<ol>
<li><a href="/ebooks/2701">Moby Dick; Or, The Whale by Herman Melville (98765)</a></li>
<li><a href="/ebooks/1342">Pride and Prejudice by Jane Austen (87654)</a></li>
<li><a href="/ebooks/2701">Moby Dick; Or, The Whale by Herman Melville (98765)</a></li>
<li><a href="/ebooks/11">Alice's Adventures in Wonderland (76543)</a></li>
<li><a href="/ebooks/999">??? (111)</a></li>
<li><a href="/about">About Gutenberg</a></li>
</ol>
</body></html>`

func newDiscoverServer(t *testing.T) *Discoverer {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/top", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, topPageHTML)
	})
	mux.HandleFunc("/books/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 1, "results": [{"id": 84, "title": "Frankenstein"}]}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return NewDiscovererWithURLs(ts.URL+"/top", ts.URL+"/books/")
}

func TestDiscoverTop_ParsesEbookLinks(t *testing.T) {
	d := newDiscoverServer(t)

	cat, err := d.DiscoverTop(context.Background(), 0)
	require.NoError(t, err)
	// Duplicate, non-ebook, and unsluggable links are all dropped.
	require.Equal(t, 3, cat.Len())

	_, err = cat.Lookup("")
	var unknownErr *core.UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)

	info, err := cat.Lookup("moby-dick-or-the-whale")
	require.NoError(t, err)
	require.Equal(t, 2701, info.ExternalID)
	require.Equal(t, "Moby Dick; Or, The Whale", info.Title)
	require.Equal(t, "Herman Melville", info.Author)

	// Entries without a " by " author default to Unknown.
	info, err = cat.Lookup("alice-s-adventures-in-wonderland")
	require.NoError(t, err)
	require.Equal(t, "Unknown", info.Author)
}

func TestDiscoverTop_HonorsLimit(t *testing.T) {
	d := newDiscoverServer(t)

	cat, err := d.DiscoverTop(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
}

func TestDiscoverTop_StatusErrorOnBadPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	t.Cleanup(ts.Close)
	d := NewDiscovererWithURLs(ts.URL, ts.URL)

	_, err := d.DiscoverTop(context.Background(), 0)

	var statusErr *core.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestResolveID(t *testing.T) {
	d := newDiscoverServer(t)

	id, err := d.ResolveID(context.Background(), "Frankenstein", "Mary Shelley")
	require.NoError(t, err)
	require.Equal(t, 84, id)
}
