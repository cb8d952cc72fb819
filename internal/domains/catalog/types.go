package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Fallback strings used when the catalog omits a field.
const (
	UnknownTitle          = "Unknown Title"
	UnknownAuthor         = "Unknown Author"
	UnknownDate           = "Date not available"
	NoDescription         = "No description available."
	NoCategories          = "No categories available"
	UnknownPublisher      = "Publisher not available"
	DescriptionPending    = "Description not available"
	IsbnVolumePrefix      = "isbn_"
	DefaultSearchPageSize = 40
)

// BookSummary is a normalized catalog search result.
type BookSummary struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	PublishedDate string   `json:"published_date"`
	PageCount     int      `json:"page_count"`
	Categories    []string `json:"categories"`

	// Only populated by genre searches, which carry sale info.
	RetailPrice  *decimal.Decimal `json:"retail_price,omitempty"`
	CurrencyCode string           `json:"currency_code,omitempty"`
}

// BookDetail is the full normalized view of a single volume.
type BookDetail struct {
	GoogleBooksID string           `json:"google_books_id"`
	Title         string           `json:"title"`
	Authors       []string         `json:"authors"`
	Description   string           `json:"description"`
	PublishedDate string           `json:"publishedDate"`
	PageCount     int              `json:"pageCount"`
	Categories    []string         `json:"categories"`
	ThumbnailURL  string           `json:"thumbnail_url"`
	Publisher     string           `json:"publisher"`
	AverageRating *float64         `json:"average_rating,omitempty"`
	RatingsCount  *int             `json:"ratings_count,omitempty"`
	RetailPrice   *decimal.Decimal `json:"retailPrice,omitempty"`
	CurrencyCode  string           `json:"currencyCode,omitempty"`
}

// BookRecord is the flat record used to enrich locally stored books
// from an ISBN lookup. Authors are pre-joined into the stored form.
type BookRecord struct {
	GoogleBooksID string `json:"google_books_id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	PublishedDate string `json:"published_date"`
	Description   string `json:"description"`
	ThumbnailURL  string `json:"thumbnail_url"`
	PageCount     *int   `json:"page_count"`
}

// Client is the outbound book-catalog API.
type Client interface {
	// Search finds volumes by free-text query.
	Search(ctx context.Context, query string, startIndex int) ([]BookSummary, error)

	// SearchGenre finds volumes by subject, including sale info.
	SearchGenre(ctx context.Context, genre string, startIndex int) ([]BookSummary, error)

	// Detail fetches one volume. IDs prefixed "isbn_" are resolved
	// through an ISBN search first. Returns ErrVolumeNotFound when the
	// catalog has no matching entry.
	Detail(ctx context.Context, volumeID string) (*BookDetail, error)

	// ByISBN returns the first volume matching an ISBN-13, or
	// ErrVolumeNotFound.
	ByISBN(ctx context.Context, isbn13 string) (*BookRecord, error)
}
