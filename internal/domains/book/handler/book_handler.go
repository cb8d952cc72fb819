package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

// BookHandler serves the authenticated personal book list endpoints.
type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// SaveBook handles POST /books/save-book
func (h *BookHandler) SaveBook(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req book.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	if err := h.service.SaveBook(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Book saved successfully"})
}

// RemoveBook handles POST /books/remove/:volumeID
func (h *BookHandler) RemoveBook(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.RemoveBook(c.Request.Context(), userID, c.Param("volumeID")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book removed successfully"})
}

// UserBooks handles GET /books/user-books
func (h *BookHandler) UserBooks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	shelves, err := h.service.UserBooks(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, shelves)
}

// UpdateProgress handles PATCH /books/progress/:volumeID
func (h *BookHandler) UpdateProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req book.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	if err := h.service.UpdateProgress(c.Request.Context(), userID, c.Param("volumeID"), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Progress updated"})
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrInvalidStatus), errors.Is(err, book.ErrInvalidDate):
		response.BadRequest(c, err.Error(), nil)
	case errors.Is(err, book.ErrBookNotFound), errors.Is(err, book.ErrUserBookNotFound),
		errors.Is(err, catalog.ErrVolumeNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, catalog.ErrNotConfigured),
		errors.Is(err, catalog.ErrRemoteUnavailable),
		errors.Is(err, catalog.ErrMalformedResponse):
		logger.Error("catalog lookup during save failed", err)
		response.ServiceUnavailable(c, "Book catalog is unavailable")
	default:
		logger.Error("book handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
