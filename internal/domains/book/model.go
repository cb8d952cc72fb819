package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is a locally persisted catalog record. The external catalog id
// (google_books_id) is the natural key: every upsert matches on it.
type Book struct {
	ID            int64    `db:"id" json:"-"`
	GoogleBooksID string   `db:"google_books_id" json:"google_books_id"`
	Title         string   `db:"title" json:"title"`
	Authors       string   `db:"authors" json:"-"` // comma-delimited in storage
	ThumbnailURL  string   `db:"thumbnail_url" json:"thumbnail_url"`
	Description   *string  `db:"description" json:"description"`
	PublishedDate *string  `db:"published_date" json:"published_date"`
	AverageRating *float64 `db:"average_rating" json:"average_rating"`
	RatingsCount  *int     `db:"ratings_count" json:"ratings_count"`
	PageCount     *int     `db:"page_count" json:"page_count"`
}

// AuthorsList splits the stored delimited string back into a list.
func (b *Book) AuthorsList() []string {
	if b.Authors == "" {
		return []string{}
	}
	return strings.Split(b.Authors, ", ")
}

// JoinAuthors renders an author list into the stored delimited form.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}

// ReadStatus is the shelf a book sits on for a user.
type ReadStatus string

const (
	StatusCurrentlyReading ReadStatus = "currently_reading"
	StatusWantToRead       ReadStatus = "want_to_read"
	StatusPreviouslyRead   ReadStatus = "previously_read"
)

// NormalizeStatus maps display forms like "Currently Reading" onto the
// stored enum form.
func NormalizeStatus(s string) ReadStatus {
	return ReadStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
}

func (s ReadStatus) IsValid() bool {
	switch s {
	case StatusCurrentlyReading, StatusWantToRead, StatusPreviouslyRead:
		return true
	}
	return false
}

func (s ReadStatus) String() string {
	return string(s)
}

// UserBook links a user to a book with a shelf status and
// reading progress. At most one row per (user, book).
type UserBook struct {
	ID          int64      `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	BookID      int64      `db:"book_id" json:"book_id"`
	Status      ReadStatus `db:"status" json:"status"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	CurrentPage *int       `db:"current_page" json:"current_page,omitempty"`
}

// BookRanking records a book's position on a named external list.
// At most one live row per (book_id, list_name); re-ingestion updates
// rank and date in place.
type BookRanking struct {
	ID              int64      `db:"id" json:"id"`
	BookID          int64      `db:"book_id" json:"book_id"`
	ListName        string     `db:"list_name" json:"list_name"`
	Rank            *int       `db:"rank" json:"rank"`
	BestsellersDate *time.Time `db:"bestsellers_date" json:"bestsellers_date"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// FeaturedMeta is the singleton row holding the timestamp of the last
// successful bestseller ingestion. Zero or one row exists; ingestion
// creates it lazily.
type FeaturedMeta struct {
	ID          int64      `db:"id" json:"id"`
	LastUpdated *time.Time `db:"last_updated" json:"last_updated"`
}
