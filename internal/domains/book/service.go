package book

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/catalog"
)

// Catalog is the slice of the catalog client the shelf service needs.
type Catalog interface {
	Detail(ctx context.Context, volumeID string) (*catalog.BookDetail, error)
}

// Service is the business logic contract for the personal book list.
type Service interface {
	// SaveBook shelves a book for the user, creating the local Book
	// from the catalog on first reference.
	SaveBook(ctx context.Context, userID uuid.UUID, req SaveBookRequest) error

	// RemoveBook unshelves a book identified by its external id.
	RemoveBook(ctx context.Context, userID uuid.UUID, googleBooksID string) error

	// UserBooks returns the user's books grouped by shelf status.
	UserBooks(ctx context.Context, userID uuid.UUID) (*ShelvesResponse, error)

	// UpdateProgress records reading progress for a shelved book.
	UpdateProgress(ctx context.Context, userID uuid.UUID, googleBooksID string, req ProgressRequest) error
}
