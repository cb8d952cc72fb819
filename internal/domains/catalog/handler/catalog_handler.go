package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/logger"
)

// CatalogHandler serves catalog search and detail endpoints. Search
// responses are memoized so identical queries within the TTL window do
// not hit the catalog API again.
type CatalogHandler struct {
	client    catalog.Client
	cache     cache.Cache
	searchTTL time.Duration
}

func NewCatalogHandler(client catalog.Client, c cache.Cache, searchTTL time.Duration) *CatalogHandler {
	return &CatalogHandler{
		client:    client,
		cache:     c,
		searchTTL: searchTTL,
	}
}

// SearchResult is the payload for both search endpoints.
type SearchResult struct {
	Books      []catalog.BookSummary `json:"books"`
	Query      string                `json:"query"`
	StartIndex int                   `json:"startIndex"`
}

// Search handles GET /books/search
func (h *CatalogHandler) Search(c *gin.Context) {
	query := strings.ToLower(c.Query("query"))
	startIndex := queryInt(c, "startIndex")

	if query == "" {
		response.Success(c, http.StatusOK, SearchResult{Books: []catalog.BookSummary{}, Query: query, StartIndex: startIndex})
		return
	}

	cacheKey := fmt.Sprintf("search:%s_%d", query, startIndex)
	result, err := cache.GetOrCompute(c.Request.Context(), h.cache, cacheKey, h.searchTTL, func() (SearchResult, error) {
		books, err := h.client.Search(c.Request.Context(), query, startIndex)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Books: books, Query: query, StartIndex: startIndex}, nil
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SearchGenre handles GET /books/search-genre/:genre
func (h *CatalogHandler) SearchGenre(c *gin.Context) {
	genre := c.Param("genre")
	startIndex := queryInt(c, "startIndex")

	books, err := h.client.SearchGenre(c.Request.Context(), genre, startIndex)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SearchResult{Books: books, Query: genre, StartIndex: startIndex})
}

// Detail handles GET /books/detail/:volumeID
func (h *CatalogHandler) Detail(c *gin.Context) {
	volumeID := c.Param("volumeID")

	detail, err := h.client.Detail(c.Request.Context(), volumeID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": detail})
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrVolumeNotFound):
		response.NotFound(c, "Book details not found")
	case errors.Is(err, catalog.ErrNotConfigured):
		response.ServiceUnavailable(c, "Catalog API key not configured")
	case errors.Is(err, catalog.ErrRemoteUnavailable), errors.Is(err, catalog.ErrMalformedResponse):
		logger.Error("catalog request failed", err)
		response.ServiceUnavailable(c, "Failed to fetch book details")
	default:
		logger.Error("catalog handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
