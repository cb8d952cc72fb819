package featured

import (
	"time"

	"bookshelf-backend/internal/domains/book"
)

// Fresh reports whether the last ingestion is recent enough to serve
// the featured view from local data. A missing meta row or a nil
// timestamp means ingestion has never succeeded.
func Fresh(meta *book.FeaturedMeta, now time.Time, ttl time.Duration) bool {
	if meta == nil || meta.LastUpdated == nil {
		return false
	}
	return now.UTC().Sub(meta.LastUpdated.UTC()) < ttl
}
