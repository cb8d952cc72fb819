package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/featured"
	"bookshelf-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the pgx-backed rankings repository.
func NewPostgresRepository(pool *pgxpool.Pool) featured.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetMeta(ctx context.Context) (*book.FeaturedMeta, error) {
	var meta book.FeaturedMeta
	err := r.pool.QueryRow(ctx, `SELECT id, last_updated FROM featured_meta ORDER BY id LIMIT 1`).
		Scan(&meta.ID, &meta.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get featured meta: %w", err)
	}

	return &meta, nil
}

func (r *postgresRepository) ListRankings(ctx context.Context) ([]featured.RankingRow, error) {
	query := `
		SELECT b.id, b.google_books_id, b.title, b.authors, b.thumbnail_url,
		       b.description, b.published_date, b.average_rating, b.ratings_count, b.page_count,
		       br.list_name, br.display_name, br.rank
		FROM book_rankings br
		JOIN books b ON b.id = br.book_id
		ORDER BY br.list_name, br.rank NULLS LAST, b.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}
	defer rows.Close()

	results := make([]featured.RankingRow, 0)
	for rows.Next() {
		var row featured.RankingRow
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
			&row.ListName,
			&row.DisplayName,
			&row.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ranking rows: %w", err)
	}

	return results, nil
}

func (r *postgresRepository) ExistingGoogleIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT google_books_id FROM books WHERE google_books_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("existing google ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan google id: %w", err)
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("google id rows: %w", err)
	}

	return existing, nil
}

func (r *postgresRepository) ApplyIngestion(ctx context.Context, items []featured.IngestItem, ingestedAt time.Time) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range items {
			item := &items[i]

			bookID, err := upsertBook(ctx, tx, item)
			if err != nil {
				return err
			}

			if err := upsertRanking(ctx, tx, bookID, item, ingestedAt); err != nil {
				return err
			}
		}

		return stampMeta(ctx, tx, ingestedAt)
	})
}

// upsertBook resolves the book row for an ingest item, inserting it on
// first sight. Existing rows keep their data: enrichment happens only
// when a book is first seen.
func upsertBook(ctx context.Context, tx pgx.Tx, item *featured.IngestItem) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM books WHERE google_books_id = $1`, item.GoogleBooksID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("select book for ingestion: %w", err)
	}

	query := `
		INSERT INTO books (google_books_id, title, authors, thumbnail_url, description, published_date, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (google_books_id) DO UPDATE SET google_books_id = EXCLUDED.google_books_id
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		item.GoogleBooksID,
		item.Title,
		item.Authors,
		item.ThumbnailURL,
		item.Description,
		item.PublishedDate,
		item.PageCount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert book for ingestion: %w", err)
	}

	return id, nil
}

func upsertRanking(ctx context.Context, tx pgx.Tx, bookID int64, item *featured.IngestItem, ingestedAt time.Time) error {
	query := `
		INSERT INTO book_rankings (book_id, list_name, display_name, rank, bestsellers_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (book_id, list_name) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    rank = EXCLUDED.rank,
		    bestsellers_date = EXCLUDED.bestsellers_date,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := tx.Exec(ctx, query, bookID, item.ListName, item.ListDisplayName, item.Rank, item.BestsellersDate, ingestedAt); err != nil {
		return fmt.Errorf("upsert ranking: %w", err)
	}

	return nil
}

// stampMeta updates the singleton meta row, creating it on first run.
func stampMeta(ctx context.Context, tx pgx.Tx, ingestedAt time.Time) error {
	tag, err := tx.Exec(ctx, `UPDATE featured_meta SET last_updated = $1`, ingestedAt)
	if err != nil {
		return fmt.Errorf("update featured meta: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := tx.Exec(ctx, `INSERT INTO featured_meta (last_updated) VALUES ($1)`, ingestedAt); err != nil {
		return fmt.Errorf("insert featured meta: %w", err)
	}

	return nil
}
