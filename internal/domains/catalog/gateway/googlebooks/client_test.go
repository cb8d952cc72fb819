package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/catalog"
)

const searchPayload = `{
  "totalItems": 2,
  "items": [
    {
      "id": "abc123",
      "volumeInfo": {
        "title": "The Go Programming Language",
        "authors": ["Alan Donovan", "Brian Kernighan"],
        "publishedDate": "2015-10-26",
        "pageCount": 380,
        "categories": ["Computers"],
        "imageLinks": {"thumbnail": "http://example.com/go.jpg"}
      },
      "saleInfo": {"retailPrice": {"amount": 31.99, "currencyCode": "USD"}}
    },
    {
      "id": "def456",
      "volumeInfo": {}
    }
  ]
}`

func newTestClient(handler http.HandlerFunc) (catalog.Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, "test-key", 5*time.Second), server
}

func TestSearchNormalizesItems(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "books", r.URL.Query().Get("printType"))
		w.Write([]byte(searchPayload))
	})
	defer server.Close()

	books, err := client.Search(context.Background(), "golang", 0)
	require.NoError(t, err)
	assert.Equal(t, "golang", gotQuery)
	require.Len(t, books, 2)

	assert.Equal(t, "abc123", books[0].GoogleBooksID)
	assert.Equal(t, "The Go Programming Language", books[0].Title)
	assert.Equal(t, []string{"Alan Donovan", "Brian Kernighan"}, books[0].Authors)
	assert.Equal(t, "http://example.com/go.jpg", books[0].ThumbnailURL)
	assert.Nil(t, books[0].RetailPrice, "plain search must not carry sale info")

	// Missing fields fall back to placeholders
	assert.Equal(t, catalog.UnknownTitle, books[1].Title)
	assert.Equal(t, []string{catalog.UnknownAuthor}, books[1].Authors)
	assert.Equal(t, catalog.UnknownDate, books[1].PublishedDate)
	assert.Equal(t, []string{catalog.NoCategories}, books[1].Categories)
}

func TestSearchGenreCarriesSaleInfo(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "subject:fantasy", r.URL.Query().Get("q"))
		w.Write([]byte(searchPayload))
	})
	defer server.Close()

	books, err := client.SearchGenre(context.Background(), "fantasy", 0)
	require.NoError(t, err)
	require.Len(t, books, 2)

	require.NotNil(t, books[0].RetailPrice)
	assert.Equal(t, "31.99", books[0].RetailPrice.String())
	assert.Equal(t, "USD", books[0].CurrencyCode)
}

func TestSearchRequiresAPIKey(t *testing.T) {
	client := NewClient("http://unused", "", time.Second)

	_, err := client.Search(context.Background(), "golang", 0)
	require.ErrorIs(t, err, catalog.ErrNotConfigured)
}

func TestSearchRemoteUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.Search(context.Background(), "golang", 0)
	require.ErrorIs(t, err, catalog.ErrRemoteUnavailable)
}

func TestSearchMalformedResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	_, err := client.Search(context.Background(), "golang", 0)
	require.ErrorIs(t, err, catalog.ErrMalformedResponse)
}

func TestByISBN(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "isbn:9780134190440", r.URL.Query().Get("q"))
		w.Write([]byte(searchPayload))
	})
	defer server.Close()

	record, err := client.ByISBN(context.Background(), "978-0-13-419044-0")
	require.NoError(t, err)
	assert.Equal(t, "abc123", record.GoogleBooksID)
	assert.Equal(t, "Alan Donovan, Brian Kernighan", record.Authors)
	assert.Equal(t, catalog.NoDescription, record.Description)
}

func TestByISBNNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})
	defer server.Close()

	_, err := client.ByISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, catalog.ErrVolumeNotFound)
}

func TestDetailResolvesISBNPrefix(t *testing.T) {
	var paths []string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/volumes" {
			w.Write([]byte(searchPayload))
			return
		}
		w.Write([]byte(`{
			"id": "abc123",
			"volumeInfo": {"title": "The Go Programming Language", "description": "A book."}
		}`))
	})
	defer server.Close()

	detail, err := client.Detail(context.Background(), "isbn_9780134190440")
	require.NoError(t, err)
	assert.Equal(t, []string{"/volumes", "/volumes/abc123"}, paths)
	assert.Equal(t, "A book.", detail.Description)
	assert.Equal(t, catalog.UnknownPublisher, detail.Publisher)
}

func TestDetailMissingVolumeInfo(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "abc123"}`))
	})
	defer server.Close()

	_, err := client.Detail(context.Background(), "abc123")
	require.ErrorIs(t, err, catalog.ErrVolumeNotFound)
}
