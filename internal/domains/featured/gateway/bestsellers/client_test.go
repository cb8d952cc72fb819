package bestsellers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/featured"
)

const overviewPayload = `{
  "results": {
    "bestsellers_date": "2024-03-09",
    "published_date": "2024-03-17",
    "lists": [
      {
        "list_name": "hardcover-fiction",
        "display_name": "Hardcover Fiction",
        "books": [
          {
            "rank": 1,
            "title": "FOURTH WING",
            "author": "Rebecca Yarros",
            "book_image": "http://example.com/fw.jpg",
            "primary_isbn13": "9781649374042"
          },
          {
            "rank": 2,
            "title": "THE WOMEN",
            "author": "Kristin Hannah",
            "book_image": "http://example.com/tw.jpg",
            "primary_isbn13": "9781250178633"
          }
        ]
      }
    ]
  }
}`

func TestFetchOverview(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api-key")
		w.Write([]byte(overviewPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)

	overview, err := client.FetchOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/lists/full-overview.json", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2024-03-09", overview.BestsellersDate)
	assert.Equal(t, "2024-03-17", overview.PublishedDate)

	require.Len(t, overview.Lists, 1)
	list := overview.Lists[0]
	assert.Equal(t, "hardcover-fiction", list.ListName)
	require.Len(t, list.Books, 2)
	assert.Equal(t, 1, list.Books[0].Rank)
	assert.Equal(t, "FOURTH WING", list.Books[0].Title)
	assert.Equal(t, "9781649374042", list.Books[0].PrimaryISBN13)
}

func TestFetchOverviewMissingKey(t *testing.T) {
	client := NewClient("http://unused", "", time.Second)

	_, err := client.FetchOverview(context.Background())
	require.ErrorIs(t, err, featured.ErrNotConfigured)
}

func TestFetchOverviewRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	_, err := client.FetchOverview(context.Background())
	require.ErrorIs(t, err, featured.ErrRemoteUnavailable)
}

func TestFetchOverviewMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	_, err := client.FetchOverview(context.Background())
	require.ErrorIs(t, err, featured.ErrMalformedResponse)
}
