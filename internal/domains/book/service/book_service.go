package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/pkg/logger"
)

type bookService struct {
	repo    book.Repository
	catalog book.Catalog
}

// NewBookService builds the personal book list service.
func NewBookService(repo book.Repository, catalog book.Catalog) book.Service {
	return &bookService{
		repo:    repo,
		catalog: catalog,
	}
}

func (s *bookService) SaveBook(ctx context.Context, userID uuid.UUID, req book.SaveBookRequest) error {
	status := book.NormalizeStatus(req.Status)
	if !status.IsValid() {
		return book.ErrInvalidStatus
	}

	target, err := s.findOrCreate(ctx, req.GoogleBooksID)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertUserBook(ctx, userID, target.ID, status); err != nil {
		return err
	}

	logger.Info("book shelved", map[string]interface{}{
		"user_id":         userID.String(),
		"google_books_id": req.GoogleBooksID,
		"status":          status.String(),
	})

	return nil
}

// findOrCreate resolves the local book row for an external id, pulling
// the volume from the catalog on first reference.
func (s *bookService) findOrCreate(ctx context.Context, googleBooksID string) (*book.Book, error) {
	existing, err := s.repo.FindByGoogleID(ctx, googleBooksID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}

	detail, err := s.catalog.Detail(ctx, googleBooksID)
	if err != nil {
		return nil, err
	}

	newBook := &book.Book{
		GoogleBooksID: detail.GoogleBooksID,
		Title:         detail.Title,
		Authors:       book.JoinAuthors(detail.Authors),
		ThumbnailURL:  detail.ThumbnailURL,
		Description:   &detail.Description,
		PublishedDate: &detail.PublishedDate,
		AverageRating: detail.AverageRating,
		RatingsCount:  detail.RatingsCount,
	}
	if detail.PageCount > 0 {
		pages := detail.PageCount
		newBook.PageCount = &pages
	}

	id, err := s.repo.Create(ctx, newBook)
	if err != nil {
		return nil, err
	}
	newBook.ID = id

	return newBook, nil
}

func (s *bookService) RemoveBook(ctx context.Context, userID uuid.UUID, googleBooksID string) error {
	target, err := s.repo.FindByGoogleID(ctx, googleBooksID)
	if err != nil {
		return err
	}

	return s.repo.RemoveUserBook(ctx, userID, target.ID)
}

func (s *bookService) UserBooks(ctx context.Context, userID uuid.UUID) (*book.ShelvesResponse, error) {
	rows, err := s.repo.ListUserBooks(ctx, userID)
	if err != nil {
		return nil, err
	}

	shelves := &book.ShelvesResponse{
		CurrentlyReading: []book.BookDTO{},
		PreviouslyRead:   []book.BookDTO{},
		WantToRead:       []book.BookDTO{},
	}
	for i := range rows {
		dto := rows[i].Book.ToDTO()
		switch rows[i].Status {
		case book.StatusCurrentlyReading:
			shelves.CurrentlyReading = append(shelves.CurrentlyReading, dto)
		case book.StatusPreviouslyRead:
			shelves.PreviouslyRead = append(shelves.PreviouslyRead, dto)
		case book.StatusWantToRead:
			shelves.WantToRead = append(shelves.WantToRead, dto)
		}
	}

	return shelves, nil
}

func (s *bookService) UpdateProgress(ctx context.Context, userID uuid.UUID, googleBooksID string, req book.ProgressRequest) error {
	target, err := s.repo.FindByGoogleID(ctx, googleBooksID)
	if err != nil {
		return err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return book.ErrInvalidDate
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return book.ErrInvalidDate
	}

	return s.repo.UpdateProgress(ctx, userID, target.ID, startDate, endDate, req.CurrentPage)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
