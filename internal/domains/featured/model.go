package featured

import (
	"context"
	"time"

	"bookshelf-backend/internal/domains/book"
)

// Overview is the normalized bestseller overview fetched from the
// lists provider.
type Overview struct {
	BestsellersDate string
	PublishedDate   string
	Lists           []OverviewList
}

// OverviewList is one named bestseller list inside an overview.
type OverviewList struct {
	ListName    string
	DisplayName string
	Books       []OverviewBook
}

// OverviewBook is a single entry of a bestseller list as the provider
// reports it. PrimaryISBN13 is the only stable identifier; entries
// without one cannot be ingested.
type OverviewBook struct {
	Rank          int
	Title         string
	Author        string
	BookImage     string
	PrimaryISBN13 string
}

// Client fetches the current bestseller overview.
type Client interface {
	FetchOverview(ctx context.Context) (*Overview, error)
}

// IngestItem is one fully resolved overview entry, ready to be written
// to storage in a single ingestion transaction.
type IngestItem struct {
	GoogleBooksID   string
	Title           string
	Authors         string
	ThumbnailURL    string
	Description     string
	PublishedDate   *string
	PageCount       *int
	ListName        string
	ListDisplayName string
	Rank            *int
	BestsellersDate *time.Time
}

// RankingRow joins a stored ranking with its book for the grouped view.
type RankingRow struct {
	Book        book.Book
	ListName    string
	DisplayName string
	Rank        *int
}

// FeaturedBook is one entry of the grouped featured view.
type FeaturedBook struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Description   *string  `json:"description"`
	Rank          *int     `json:"rank"`
}

// FeaturedList groups featured books under their list name. DisplayName
// is the provider's human-readable list title, falling back to the slug
// when the provider omitted one.
type FeaturedList struct {
	ListName    string         `json:"list_name"`
	DisplayName string         `json:"display_name"`
	Books       []FeaturedBook `json:"books"`
}

// FeaturedResponse is the payload of the featured endpoint. The dates
// are only populated right after an ingestion run; requests served from
// fresh local data leave them empty.
type FeaturedResponse struct {
	BestsellersDate *string        `json:"bestsellers_date,omitempty"`
	PublishedDate   *string        `json:"published_date,omitempty"`
	Lists           []FeaturedList `json:"lists"`
}

// Service exposes the featured bestseller view.
type Service interface {
	// Featured returns the grouped bestseller view, ingesting from the
	// remote provider first when local data is stale.
	Featured(ctx context.Context) (*FeaturedResponse, error)
}
