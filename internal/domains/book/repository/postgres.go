package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/pkg/cache"
)

const bookCacheTTL = 15 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the pgx-backed book repository. Lookups
// by external id are cache-aside; book rows never change after insert,
// so entries are only ever evicted by TTL.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

func bookCacheKey(googleBooksID string) string {
	return fmt.Sprintf("book:gid:%s", googleBooksID)
}

func (r *postgresRepository) FindByGoogleID(ctx context.Context, googleBooksID string) (*book.Book, error) {
	var cached book.Book
	if hit, err := r.cache.Get(ctx, bookCacheKey(googleBooksID), &cached); err == nil && hit {
		return &cached, nil
	}

	query := `
		SELECT id, google_books_id, title, authors, thumbnail_url,
		       description, published_date, average_rating, ratings_count, page_count
		FROM books
		WHERE google_books_id = $1
	`

	var b book.Book
	err := r.pool.QueryRow(ctx, query, googleBooksID).Scan(
		&b.ID,
		&b.GoogleBooksID,
		&b.Title,
		&b.Authors,
		&b.ThumbnailURL,
		&b.Description,
		&b.PublishedDate,
		&b.AverageRating,
		&b.RatingsCount,
		&b.PageCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by google id: %w", err)
	}

	_ = r.cache.Set(ctx, bookCacheKey(googleBooksID), b, bookCacheTTL)

	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (int64, error) {
	// ON CONFLICT keeps concurrent first-saves of the same volume
	// idempotent: both callers end up with the same row id.
	query := `
		INSERT INTO books (google_books_id, title, authors, thumbnail_url,
		                   description, published_date, average_rating, ratings_count, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (google_books_id) DO UPDATE SET google_books_id = EXCLUDED.google_books_id
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		b.GoogleBooksID,
		b.Title,
		b.Authors,
		b.ThumbnailURL,
		b.Description,
		b.PublishedDate,
		b.AverageRating,
		b.RatingsCount,
		b.PageCount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create book: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) UpsertUserBook(ctx context.Context, userID uuid.UUID, bookID int64, status book.ReadStatus) error {
	query := `
		INSERT INTO user_books (user_id, book_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id) DO UPDATE SET status = EXCLUDED.status
	`

	if _, err := r.pool.Exec(ctx, query, userID, bookID, status.String()); err != nil {
		return fmt.Errorf("upsert user book: %w", err)
	}

	return nil
}

func (r *postgresRepository) RemoveUserBook(ctx context.Context, userID uuid.UUID, bookID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_books WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return fmt.Errorf("remove user book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrUserBookNotFound
	}

	return nil
}

func (r *postgresRepository) ListUserBooks(ctx context.Context, userID uuid.UUID) ([]book.UserBookRow, error) {
	query := `
		SELECT b.id, b.google_books_id, b.title, b.authors, b.thumbnail_url,
		       b.description, b.published_date, b.average_rating, b.ratings_count, b.page_count,
		       ub.status, ub.start_date, ub.end_date, ub.current_page
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1
		ORDER BY ub.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user books: %w", err)
	}
	defer rows.Close()

	results := make([]book.UserBookRow, 0)
	for rows.Next() {
		var row book.UserBookRow
		err := rows.Scan(
			&row.Book.ID,
			&row.Book.GoogleBooksID,
			&row.Book.Title,
			&row.Book.Authors,
			&row.Book.ThumbnailURL,
			&row.Book.Description,
			&row.Book.PublishedDate,
			&row.Book.AverageRating,
			&row.Book.RatingsCount,
			&row.Book.PageCount,
			&row.Status,
			&row.StartDate,
			&row.EndDate,
			&row.CurrentPage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user book row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user book rows: %w", err)
	}

	return results, nil
}

func (r *postgresRepository) UpdateProgress(ctx context.Context, userID uuid.UUID, bookID int64, startDate, endDate *time.Time, currentPage *int) error {
	// COALESCE keeps fields the caller omitted untouched.
	query := `
		UPDATE user_books
		SET start_date = COALESCE($3, start_date),
		    end_date = COALESCE($4, end_date),
		    current_page = COALESCE($5, current_page)
		WHERE user_id = $1 AND book_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, bookID, startDate, endDate, currentPage)
	if err != nil {
		return fmt.Errorf("update reading progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrUserBookNotFound
	}

	return nil
}
