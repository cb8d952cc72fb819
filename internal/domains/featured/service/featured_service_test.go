package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/domains/featured"
)

type fakeRepo struct {
	getMeta           func(ctx context.Context) (*book.FeaturedMeta, error)
	listRankings      func(ctx context.Context) ([]featured.RankingRow, error)
	existingGoogleIDs func(ctx context.Context, ids []string) (map[string]struct{}, error)
	applyIngestion    func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error
}

func (f *fakeRepo) GetMeta(ctx context.Context) (*book.FeaturedMeta, error) {
	return f.getMeta(ctx)
}

func (f *fakeRepo) ListRankings(ctx context.Context) ([]featured.RankingRow, error) {
	return f.listRankings(ctx)
}

func (f *fakeRepo) ExistingGoogleIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	return f.existingGoogleIDs(ctx, ids)
}

func (f *fakeRepo) ApplyIngestion(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
	return f.applyIngestion(ctx, items, ingestedAt)
}

type fakeClient struct {
	calls    int
	overview *featured.Overview
	err      error
}

func (f *fakeClient) FetchOverview(ctx context.Context) (*featured.Overview, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

type fakeEnricher struct {
	byISBN func(ctx context.Context, isbn13 string) (*catalog.BookRecord, error)
}

func (f *fakeEnricher) ByISBN(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
	return f.byISBN(ctx, isbn13)
}

func sampleOverview() *featured.Overview {
	return &featured.Overview{
		BestsellersDate: "2024-03-09",
		PublishedDate:   "2024-03-17",
		Lists: []featured.OverviewList{
			{
				ListName:    "hardcover-fiction",
				DisplayName: "Hardcover Fiction",
				Books: []featured.OverviewBook{
					{Rank: 1, Title: "FOURTH WING", Author: "Rebecca Yarros", BookImage: "http://example.com/fw.jpg", PrimaryISBN13: "9781649374042"},
					{Rank: 2, Title: "THE WOMEN", Author: "Kristin Hannah", BookImage: "http://example.com/tw.jpg", PrimaryISBN13: "9781250178633"},
					{Rank: 3, Title: "NO ISBN", Author: "Nobody"},
				},
			},
		},
	}
}

func localRows() []featured.RankingRow {
	rank1, rank2 := 1, 2
	return []featured.RankingRow{
		{Book: book.Book{GoogleBooksID: "isbn_9781649374042", Title: "Fourth Wing", Authors: "Rebecca Yarros"}, ListName: "hardcover-fiction", Rank: &rank1},
		{Book: book.Book{GoogleBooksID: "isbn_9781250178633", Title: "The Women", Authors: "Kristin Hannah"}, ListName: "hardcover-fiction", Rank: &rank2},
	}
}

func metaUpdatedAt(ts time.Time) *book.FeaturedMeta {
	return &book.FeaturedMeta{ID: 1, LastUpdated: &ts}
}

func newService(repo featured.Repository, client featured.Client, enricher Enricher, at time.Time) *featuredService {
	svc := NewFeaturedService(repo, client, enricher, 24*time.Hour).(*featuredService)
	svc.now = func() time.Time { return at }
	return svc
}

func TestFeaturedServesLocalWhenFresh(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return metaUpdatedAt(now.Add(-time.Hour)), nil
		},
		listRankings: func(ctx context.Context) ([]featured.RankingRow, error) {
			return localRows(), nil
		},
	}
	client := &fakeClient{overview: sampleOverview()}
	svc := newService(repo, client, &fakeEnricher{}, now)

	resp, err := svc.Featured(context.Background())
	require.NoError(t, err)

	assert.Zero(t, client.calls, "fresh data must not trigger a remote fetch")
	assert.Nil(t, resp.BestsellersDate, "locally served views carry no overview dates")
	require.Len(t, resp.Lists, 1)
	assert.Len(t, resp.Lists[0].Books, 2)
}

func TestFeaturedIngestsWhenStale(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var ingested []featured.IngestItem
	var stampedAt time.Time
	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return metaUpdatedAt(now.Add(-25 * time.Hour)), nil
		},
		existingGoogleIDs: func(ctx context.Context, ids []string) (map[string]struct{}, error) {
			assert.Equal(t, []string{"isbn_9781649374042", "isbn_9781250178633"}, ids)
			return map[string]struct{}{}, nil
		},
		applyIngestion: func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
			ingested = items
			stampedAt = ingestedAt
			return nil
		},
		listRankings: func(ctx context.Context) ([]featured.RankingRow, error) {
			return localRows(), nil
		},
	}
	client := &fakeClient{overview: sampleOverview()}
	enricher := &fakeEnricher{
		byISBN: func(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
			return &catalog.BookRecord{
				GoogleBooksID: "vol_" + isbn13,
				Title:         "Enriched " + isbn13,
				Authors:       "Enriched Author",
				Description:   "Full description.",
				PublishedDate: "2023-05-02",
			}, nil
		},
	}
	svc := newService(repo, client, enricher, now)

	resp, err := svc.Featured(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, now, stampedAt)

	// The entry without a primary ISBN is skipped.
	require.Len(t, ingested, 2)
	first := ingested[0]
	assert.Equal(t, "isbn_9781649374042", first.GoogleBooksID, "stored id stays isbn-derived even after enrichment")
	assert.Equal(t, "Enriched 9781649374042", first.Title)
	assert.Equal(t, "Full description.", first.Description)
	assert.Equal(t, "hardcover-fiction", first.ListName)
	assert.Equal(t, "Hardcover Fiction", first.ListDisplayName)
	require.NotNil(t, first.Rank)
	assert.Equal(t, 1, *first.Rank)
	require.NotNil(t, first.BestsellersDate)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), *first.BestsellersDate)

	require.NotNil(t, resp.BestsellersDate)
	assert.Equal(t, "2024-03-09", *resp.BestsellersDate)
	require.NotNil(t, resp.PublishedDate)
	assert.Equal(t, "2024-03-17", *resp.PublishedDate)
}

func TestFeaturedSkipsEnrichmentForKnownBooks(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var enrichedISBNs []string
	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return nil, nil
		},
		existingGoogleIDs: func(ctx context.Context, ids []string) (map[string]struct{}, error) {
			return map[string]struct{}{"isbn_9781649374042": {}}, nil
		},
		applyIngestion: func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
			return nil
		},
		listRankings: func(ctx context.Context) ([]featured.RankingRow, error) {
			return localRows(), nil
		},
	}
	client := &fakeClient{overview: sampleOverview()}
	enricher := &fakeEnricher{
		byISBN: func(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
			enrichedISBNs = append(enrichedISBNs, isbn13)
			return &catalog.BookRecord{Title: "Enriched"}, nil
		},
	}
	svc := newService(repo, client, enricher, now)

	_, err := svc.Featured(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"9781250178633"}, enrichedISBNs, "only unseen books hit the catalog")
}

func TestFeaturedEnrichmentFailureFallsBackToOverview(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var ingested []featured.IngestItem
	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return nil, nil
		},
		existingGoogleIDs: func(ctx context.Context, ids []string) (map[string]struct{}, error) {
			return map[string]struct{}{}, nil
		},
		applyIngestion: func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
			ingested = items
			return nil
		},
		listRankings: func(ctx context.Context) ([]featured.RankingRow, error) {
			return localRows(), nil
		},
	}
	client := &fakeClient{overview: sampleOverview()}
	enricher := &fakeEnricher{
		byISBN: func(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
			return nil, catalog.ErrVolumeNotFound
		},
	}
	svc := newService(repo, client, enricher, now)

	_, err := svc.Featured(context.Background())
	require.NoError(t, err, "per-book enrichment failure must not abort ingestion")

	require.Len(t, ingested, 2)
	assert.Equal(t, "FOURTH WING", ingested[0].Title)
	assert.Equal(t, "Rebecca Yarros", ingested[0].Authors)
	assert.Equal(t, catalog.NoDescription, ingested[0].Description)
}

func TestFeaturedIngestionReplayKeepsRankingsStable(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two stale requests ingest the same overview back to back. The
	// ranking-determining fields must come out identical both times,
	// and enrichment must only run on first sight.
	var runs [][]featured.IngestItem
	known := map[string]struct{}{}
	enrichCalls := 0

	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return nil, nil
		},
		existingGoogleIDs: func(ctx context.Context, ids []string) (map[string]struct{}, error) {
			snapshot := make(map[string]struct{}, len(known))
			for id := range known {
				snapshot[id] = struct{}{}
			}
			return snapshot, nil
		},
		applyIngestion: func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
			runs = append(runs, items)
			for _, item := range items {
				known[item.GoogleBooksID] = struct{}{}
			}
			return nil
		},
		listRankings: func(ctx context.Context) ([]featured.RankingRow, error) {
			return localRows(), nil
		},
	}
	client := &fakeClient{overview: sampleOverview()}
	enricher := &fakeEnricher{
		byISBN: func(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
			enrichCalls++
			return &catalog.BookRecord{Title: "Enriched " + isbn13}, nil
		},
	}
	svc := newService(repo, client, enricher, now)

	_, err := svc.Featured(context.Background())
	require.NoError(t, err)
	_, err = svc.Featured(context.Background())
	require.NoError(t, err)

	require.Len(t, runs, 2)
	require.Len(t, runs[1], len(runs[0]))
	for i := range runs[0] {
		assert.Equal(t, runs[0][i].GoogleBooksID, runs[1][i].GoogleBooksID)
		assert.Equal(t, runs[0][i].ListName, runs[1][i].ListName)
		assert.Equal(t, runs[0][i].ListDisplayName, runs[1][i].ListDisplayName)
		assert.Equal(t, runs[0][i].Rank, runs[1][i].Rank)
		assert.Equal(t, runs[0][i].BestsellersDate, runs[1][i].BestsellersDate)
	}
	assert.Equal(t, 2, enrichCalls, "replay must not re-enrich known books")
}

func TestFeaturedRemoteFailureReturnsError(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	// Stale meta and stored rankings exist, yet a failed fetch still
	// surfaces the error instead of serving the stored view.
	applied := false
	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return metaUpdatedAt(now.Add(-48 * time.Hour)), nil
		},
		applyIngestion: func(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
			applied = true
			return nil
		},
	}
	client := &fakeClient{err: featured.ErrRemoteUnavailable}
	svc := newService(repo, client, &fakeEnricher{}, now)

	_, err := svc.Featured(context.Background())
	require.ErrorIs(t, err, featured.ErrRemoteUnavailable)
	assert.False(t, applied, "a failed fetch must not write anything")
}

func TestFeaturedRemoteFailureWithoutLocalData(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		getMeta: func(ctx context.Context) (*book.FeaturedMeta, error) {
			return nil, nil
		},
	}
	client := &fakeClient{err: featured.ErrRemoteUnavailable}
	svc := newService(repo, client, &fakeEnricher{}, now)

	_, err := svc.Featured(context.Background())
	require.ErrorIs(t, err, featured.ErrRemoteUnavailable)
}
