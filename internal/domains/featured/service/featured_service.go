package service

import (
	"context"
	"time"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/domains/featured"
	"bookshelf-backend/pkg/logger"
)

// Enricher resolves overview entries to full catalog records by ISBN.
type Enricher interface {
	ByISBN(ctx context.Context, isbn13 string) (*catalog.BookRecord, error)
}

type featuredService struct {
	repo     featured.Repository
	client   featured.Client
	enricher Enricher
	ttl      time.Duration
	now      func() time.Time
}

// NewFeaturedService builds the featured bestseller service. ttl is the
// freshness window: within it the view is served from local data
// without touching the remote provider.
func NewFeaturedService(repo featured.Repository, client featured.Client, enricher Enricher, ttl time.Duration) featured.Service {
	return &featuredService{
		repo:     repo,
		client:   client,
		enricher: enricher,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *featuredService) Featured(ctx context.Context) (*featured.FeaturedResponse, error) {
	meta, err := s.repo.GetMeta(ctx)
	if err != nil {
		return nil, err
	}

	if featured.Fresh(meta, s.now(), s.ttl) {
		return s.serveLocal(ctx)
	}

	// Capture the run's timestamp before the remote call so the stored
	// freshness marker never post-dates the data it covers.
	start := s.now()

	overview, err := s.client.FetchOverview(ctx)
	if err != nil {
		// A failed fetch fails the request; stored rankings stay untouched
		// and the next request retries.
		return nil, err
	}

	items, err := s.buildItems(ctx, overview)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ApplyIngestion(ctx, items, start); err != nil {
		return nil, err
	}

	logger.Info("bestseller ingestion complete", map[string]interface{}{
		"items":            len(items),
		"bestsellers_date": overview.BestsellersDate,
	})

	resp, err := s.serveLocal(ctx)
	if err != nil {
		return nil, err
	}
	if overview.BestsellersDate != "" {
		resp.BestsellersDate = &overview.BestsellersDate
	}
	if overview.PublishedDate != "" {
		resp.PublishedDate = &overview.PublishedDate
	}

	return resp, nil
}

func (s *featuredService) serveLocal(ctx context.Context) (*featured.FeaturedResponse, error) {
	rows, err := s.repo.ListRankings(ctx)
	if err != nil {
		return nil, err
	}

	return &featured.FeaturedResponse{
		Lists: featured.BuildFeaturedLists(rows),
	}, nil
}

// buildItems flattens an overview into ingest items. Books already
// known locally skip catalog enrichment; new ones are looked up by
// ISBN, falling back to the overview's own fields when the lookup
// fails.
func (s *featuredService) buildItems(ctx context.Context, overview *featured.Overview) ([]featured.IngestItem, error) {
	ids := make([]string, 0)
	for _, list := range overview.Lists {
		for _, entry := range list.Books {
			if entry.PrimaryISBN13 != "" {
				ids = append(ids, catalog.IsbnVolumePrefix+entry.PrimaryISBN13)
			}
		}
	}

	existing, err := s.repo.ExistingGoogleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	bestsellersDate := parseListDate(overview.BestsellersDate)

	items := make([]featured.IngestItem, 0, len(ids))
	for _, list := range overview.Lists {
		for _, entry := range list.Books {
			if entry.PrimaryISBN13 == "" {
				continue
			}

			item := featured.IngestItem{
				GoogleBooksID:   catalog.IsbnVolumePrefix + entry.PrimaryISBN13,
				Title:           entry.Title,
				Authors:         entry.Author,
				ThumbnailURL:    entry.BookImage,
				Description:     catalog.NoDescription,
				ListName:        list.ListName,
				ListDisplayName: list.DisplayName,
				BestsellersDate: bestsellersDate,
			}
			if entry.Rank > 0 {
				rank := entry.Rank
				item.Rank = &rank
			}

			if _, known := existing[item.GoogleBooksID]; !known {
				s.enrich(ctx, &item, entry.PrimaryISBN13)
			}

			items = append(items, item)
		}
	}

	return items, nil
}

func (s *featuredService) enrich(ctx context.Context, item *featured.IngestItem, isbn13 string) {
	record, err := s.enricher.ByISBN(ctx, isbn13)
	if err != nil {
		logger.Warn("catalog enrichment failed, keeping overview fields", map[string]interface{}{
			"isbn13": isbn13,
			"error":  err.Error(),
		})
		return
	}

	if record.Title != "" && record.Title != catalog.UnknownTitle {
		item.Title = record.Title
	}
	if record.Authors != "" && record.Authors != catalog.UnknownAuthor {
		item.Authors = record.Authors
	}
	if record.ThumbnailURL != "" {
		item.ThumbnailURL = record.ThumbnailURL
	}
	if record.Description != "" {
		item.Description = record.Description
	}
	if record.PublishedDate != "" && record.PublishedDate != catalog.UnknownDate {
		date := record.PublishedDate
		item.PublishedDate = &date
	}
	item.PageCount = record.PageCount
}

func parseListDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
