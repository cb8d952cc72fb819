package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/featured"
)

// testPool connects to the migrated database named by TEST_DATABASE_URL
// and empties the tables ingestion touches. Tests skip when the
// variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(),
		`TRUNCATE book_rankings, user_books, books, featured_meta RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func overviewItems() []featured.IngestItem {
	rank1, rank2 := 1, 2
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	return []featured.IngestItem{
		{
			GoogleBooksID:   "isbn_9781649374042",
			Title:           "Fourth Wing",
			Authors:         "Rebecca Yarros",
			Description:     "A dragon rider story.",
			ListName:        "hardcover-fiction",
			ListDisplayName: "Hardcover Fiction",
			Rank:            &rank1,
			BestsellersDate: &date,
		},
		{
			GoogleBooksID:   "isbn_9781250178633",
			Title:           "The Women",
			Authors:         "Kristin Hannah",
			Description:     "A wartime nursing story.",
			ListName:        "hardcover-fiction",
			ListDisplayName: "Hardcover Fiction",
			Rank:            &rank2,
			BestsellersDate: &date,
		},
	}
}

func TestApplyIngestionReplayIsIdempotent(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	firstRun := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ApplyIngestion(ctx, overviewItems(), firstRun))

	before, err := repo.ListRankings(ctx)
	require.NoError(t, err)
	require.Len(t, before, 2)

	// Replay the same overview with a changed title: existing books keep
	// their data, ranking rows update in place, row counts stay put.
	replayed := overviewItems()
	replayed[0].Title = "FOURTH WING"
	secondRun := firstRun.Add(time.Hour)
	require.NoError(t, repo.ApplyIngestion(ctx, replayed, secondRun))

	after, err := repo.ListRankings(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	var bookCount, rankingCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&bookCount))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM book_rankings`).Scan(&rankingCount))
	assert.Equal(t, 2, bookCount)
	assert.Equal(t, 2, rankingCount)

	meta, err := repo.GetMeta(ctx)
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.NotNil(t, meta.LastUpdated)
	assert.True(t, meta.LastUpdated.Equal(secondRun), "meta carries the latest run's stamp")
}

func TestApplyIngestionRankMovesInPlace(t *testing.T) {
	pool := testPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rank5 := 5
	items := []featured.IngestItem{{
		GoogleBooksID: "isbn_9781649374042",
		Title:         "Fourth Wing",
		Authors:       "Rebecca Yarros",
		ListName:      "hardcover-fiction",
		Rank:          &rank5,
	}}
	require.NoError(t, repo.ApplyIngestion(ctx, items, at))

	rank2 := 2
	items[0].Rank = &rank2
	require.NoError(t, repo.ApplyIngestion(ctx, items, at.Add(time.Hour)))

	rows, err := repo.ListRankings(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Rank)
	assert.Equal(t, 2, *rows[0].Rank)
}
