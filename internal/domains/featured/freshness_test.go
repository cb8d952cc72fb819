package featured

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookshelf-backend/internal/domains/book"
)

func TestFreshnessWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	metaAt := func(updated time.Time) *book.FeaturedMeta {
		return &book.FeaturedMeta{ID: 1, LastUpdated: &updated}
	}

	assert.True(t, Fresh(metaAt(now), now, ttl))
	assert.True(t, Fresh(metaAt(now.Add(-23*time.Hour-59*time.Minute-59*time.Second)), now, ttl))
	assert.False(t, Fresh(metaAt(now.Add(-24*time.Hour)), now, ttl))
	assert.False(t, Fresh(metaAt(now.Add(-24*time.Hour-time.Second)), now, ttl))
}

func TestFreshnessNormalizesZones(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-time.Hour).In(loc)

	assert.True(t, Fresh(&book.FeaturedMeta{ID: 1, LastUpdated: &updated}, now, 24*time.Hour))
}

func TestFreshnessMissingMeta(t *testing.T) {
	now := time.Now()

	assert.False(t, Fresh(nil, now, 24*time.Hour))
	assert.False(t, Fresh(&book.FeaturedMeta{ID: 1}, now, 24*time.Hour))
}

func TestBuildFeaturedListsOrdering(t *testing.T) {
	rank := func(n int) *int { return &n }
	rows := []RankingRow{
		{Book: book.Book{GoogleBooksID: "c"}, ListName: "hardcover-fiction", DisplayName: "Hardcover Fiction", Rank: rank(3)},
		{Book: book.Book{GoogleBooksID: "a"}, ListName: "hardcover-fiction", DisplayName: "Hardcover Fiction", Rank: rank(1)},
		{Book: book.Book{GoogleBooksID: "x"}, ListName: "hardcover-fiction", DisplayName: "Hardcover Fiction", Rank: nil},
		{Book: book.Book{GoogleBooksID: "b"}, ListName: "hardcover-fiction", DisplayName: "Hardcover Fiction", Rank: rank(2)},
		{Book: book.Book{GoogleBooksID: "z"}, ListName: "paperback-nonfiction", Rank: rank(1)},
	}

	lists := BuildFeaturedLists(rows)

	assert.Len(t, lists, 2)
	assert.Equal(t, "hardcover-fiction", lists[0].ListName)
	assert.Equal(t, "Hardcover Fiction", lists[0].DisplayName)
	assert.Equal(t, "paperback-nonfiction", lists[1].ListName)
	assert.Equal(t, "paperback-nonfiction", lists[1].DisplayName, "missing display name falls back to the slug")

	var order []string
	for _, b := range lists[0].Books {
		order = append(order, b.GoogleBooksID)
	}
	assert.Equal(t, []string{"a", "b", "c", "x"}, order, "ranked ascending, unranked last")
}

func TestBuildFeaturedListsEmpty(t *testing.T) {
	lists := BuildFeaturedLists(nil)
	assert.NotNil(t, lists)
	assert.Empty(t, lists)
}
