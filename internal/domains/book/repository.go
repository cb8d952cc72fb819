package book

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserBookRow is a user-book link joined with its book.
type UserBookRow struct {
	Book        Book
	Status      ReadStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CurrentPage *int
}

// Repository is the data access contract for the book store.
type Repository interface {
	// FindByGoogleID looks a book up by its external catalog id.
	// Returns ErrBookNotFound when no row exists.
	FindByGoogleID(ctx context.Context, googleBooksID string) (*Book, error)

	// Create inserts a book and returns its generated id.
	Create(ctx context.Context, b *Book) (int64, error)

	// UpsertUserBook creates the (user, book) link or updates its
	// status when the link already exists.
	UpsertUserBook(ctx context.Context, userID uuid.UUID, bookID int64, status ReadStatus) error

	// RemoveUserBook deletes the (user, book) link.
	// Returns ErrUserBookNotFound when the user never shelved the book.
	RemoveUserBook(ctx context.Context, userID uuid.UUID, bookID int64) error

	// ListUserBooks returns all shelved books for a user.
	ListUserBooks(ctx context.Context, userID uuid.UUID) ([]UserBookRow, error)

	// UpdateProgress sets reading progress on an existing link.
	// Returns ErrUserBookNotFound when the link does not exist.
	UpdateProgress(ctx context.Context, userID uuid.UUID, bookID int64, startDate, endDate *time.Time, currentPage *int) error
}
