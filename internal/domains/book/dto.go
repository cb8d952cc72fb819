package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookDTO is the public book representation.
type BookDTO struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Description   *string  `json:"description"`
	PublishedDate *string  `json:"published_date"`
	AverageRating *float64 `json:"average_rating"`
	RatingsCount  *int     `json:"ratings_count"`
	PageCount     *int     `json:"page_count"`
}

// ToDTO converts a Book entity to its public form.
func (b *Book) ToDTO() BookDTO {
	return BookDTO{
		GoogleBooksID: b.GoogleBooksID,
		Title:         b.Title,
		Authors:       b.AuthorsList(),
		ThumbnailURL:  b.ThumbnailURL,
		Description:   b.Description,
		PublishedDate: b.PublishedDate,
		AverageRating: b.AverageRating,
		RatingsCount:  b.RatingsCount,
		PageCount:     b.PageCount,
	}
}

// SaveBookRequest adds a book to one of the caller's shelves. Books are
// matched by the external catalog id only; title and authors ride along
// for display but never participate in matching.
type SaveBookRequest struct {
	GoogleBooksID string   `json:"google_books_id" binding:"required"`
	Status        string   `json:"status" binding:"required"`
	Title         string   `json:"title,omitempty"`
	Authors       []string `json:"authors,omitempty"`
}

func (r SaveBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GoogleBooksID,
			validation.Required.Error("google_books_id is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
		),
	)
}

// ProgressRequest updates reading progress for a shelved book.
// Dates use YYYY-MM-DD.
type ProgressRequest struct {
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	CurrentPage *int    `json:"current_page,omitempty"`
}

func (r ProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StartDate,
			validation.When(r.StartDate != nil, validation.Date("2006-01-02").Error("start_date must be YYYY-MM-DD")),
		),
		validation.Field(&r.EndDate,
			validation.When(r.EndDate != nil, validation.Date("2006-01-02").Error("end_date must be YYYY-MM-DD")),
		),
		validation.Field(&r.CurrentPage,
			validation.When(r.CurrentPage != nil, validation.Min(0).Error("current_page must not be negative")),
		),
	)
}

// ShelvesResponse groups a user's books by shelf status.
type ShelvesResponse struct {
	CurrentlyReading []BookDTO `json:"currently_reading"`
	PreviouslyRead   []BookDTO `json:"previously_read"`
	WantToRead       []BookDTO `json:"want_to_read"`
}
