package featured

import (
	"context"
	"time"

	"bookshelf-backend/internal/domains/book"
)

// Repository is the data access contract for bestseller rankings.
type Repository interface {
	// GetMeta returns the ingestion meta row, or nil when ingestion has
	// never run.
	GetMeta(ctx context.Context) (*book.FeaturedMeta, error)

	// ListRankings returns all live rankings joined with their books,
	// ordered for the grouped view.
	ListRankings(ctx context.Context) ([]RankingRow, error)

	// ExistingGoogleIDs reports which of the given external ids already
	// have a local book row.
	ExistingGoogleIDs(ctx context.Context, ids []string) (map[string]struct{}, error)

	// ApplyIngestion upserts books and rankings for one overview and
	// stamps the meta row, all in a single transaction. Either every
	// item lands along with the new timestamp, or nothing changes.
	ApplyIngestion(ctx context.Context, items []IngestItem, ingestedAt time.Time) error
}
