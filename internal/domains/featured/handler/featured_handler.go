package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/featured"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/logger"
)

// FeaturedHandler serves the bestseller view.
type FeaturedHandler struct {
	service featured.Service
}

func NewFeaturedHandler(service featured.Service) *FeaturedHandler {
	return &FeaturedHandler{service: service}
}

// Featured handles GET /books/featured
func (h *FeaturedHandler) Featured(c *gin.Context) {
	resp, err := h.service.Featured(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *FeaturedHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, featured.ErrNotConfigured):
		response.ServiceUnavailable(c, "Bestsellers API key not configured")
	case errors.Is(err, featured.ErrRemoteUnavailable), errors.Is(err, featured.ErrMalformedResponse):
		logger.Error("bestseller fetch failed", err)
		response.ServiceUnavailable(c, "Featured books are unavailable")
	default:
		logger.Error("featured handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
