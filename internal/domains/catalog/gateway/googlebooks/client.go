package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookshelf-backend/internal/domains/catalog"
)

// =====================================================
// GOOGLE BOOKS CLIENT
// =====================================================

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Google Books catalog client
func NewClient(baseURL, apiKey string, timeout time.Duration) catalog.Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// =====================================================
// WIRE TYPES
// =====================================================

type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string      `json:"id"`
	VolumeInfo *volumeInfo `json:"volumeInfo"`
	SaleInfo   *saleInfo   `json:"saleInfo"`
}

type volumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Publisher     string     `json:"publisher"`
	PublishedDate string     `json:"publishedDate"`
	Description   string     `json:"description"`
	PageCount     int        `json:"pageCount"`
	Categories    []string   `json:"categories"`
	AverageRating *float64   `json:"averageRating"`
	RatingsCount  *int       `json:"ratingsCount"`
	ImageLinks    imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

type saleInfo struct {
	RetailPrice *retailPrice `json:"retailPrice"`
}

type retailPrice struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// =====================================================
// OPERATIONS
// =====================================================

// Search finds volumes by free-text query.
func (c *Client) Search(ctx context.Context, query string, startIndex int) ([]catalog.BookSummary, error) {
	if c.apiKey == "" {
		return nil, catalog.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	return c.searchVolumes(ctx, params, startIndex, false)
}

// SearchGenre finds volumes by subject. The public volumes endpoint
// serves subject queries without a key, so none is required here.
func (c *Client) SearchGenre(ctx context.Context, genre string, startIndex int) ([]catalog.BookSummary, error) {
	params := url.Values{}
	params.Set("q", "subject:"+genre)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	return c.searchVolumes(ctx, params, startIndex, true)
}

func (c *Client) searchVolumes(ctx context.Context, params url.Values, startIndex int, includeSale bool) ([]catalog.BookSummary, error) {
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("printType", "books")
	params.Set("maxResults", strconv.Itoa(catalog.DefaultSearchPageSize))

	var data volumesResponse
	if err := c.getJSON(ctx, c.baseURL+"/volumes?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	summaries := make([]catalog.BookSummary, 0, len(data.Items))
	for _, item := range data.Items {
		if item.VolumeInfo == nil {
			continue
		}
		summaries = append(summaries, summaryFromItem(item, includeSale))
	}
	return summaries, nil
}

// Detail fetches detailed information about one volume.
func (c *Client) Detail(ctx context.Context, volumeID string) (*catalog.BookDetail, error) {
	if c.apiKey == "" {
		return nil, catalog.ErrNotConfigured
	}

	// Synthetic ids derived from bestseller ingestion carry an ISBN
	// instead of a real volume id; resolve them through search first.
	if isbn, ok := strings.CutPrefix(volumeID, catalog.IsbnVolumePrefix); ok {
		item, err := c.findByISBN(ctx, isbn)
		if err != nil {
			return nil, err
		}
		volumeID = item.ID
	}

	var item volumeItem
	if err := c.getJSON(ctx, c.baseURL+"/volumes/"+url.PathEscape(volumeID)+"?key="+url.QueryEscape(c.apiKey), &item); err != nil {
		return nil, err
	}

	if item.VolumeInfo == nil {
		return nil, catalog.ErrVolumeNotFound
	}

	detail := detailFromItem(item)
	return &detail, nil
}

// ByISBN returns the first volume matching an ISBN-13.
func (c *Client) ByISBN(ctx context.Context, isbn13 string) (*catalog.BookRecord, error) {
	if c.apiKey == "" {
		return nil, catalog.ErrNotConfigured
	}

	item, err := c.findByISBN(ctx, isbn13)
	if err != nil {
		return nil, err
	}

	record := recordFromItem(*item)
	return &record, nil
}

func (c *Client) findByISBN(ctx context.Context, isbn string) (*volumeItem, error) {
	params := url.Values{}
	params.Set("q", "isbn:"+normalizeISBN(isbn))
	params.Set("key", c.apiKey)

	var data volumesResponse
	if err := c.getJSON(ctx, c.baseURL+"/volumes?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	if data.TotalItems == 0 || len(data.Items) == 0 || data.Items[0].VolumeInfo == nil {
		return nil, catalog.ErrVolumeNotFound
	}
	return &data.Items[0], nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return catalog.ErrVolumeNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", catalog.ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrMalformedResponse, err)
	}
	return nil
}

// =====================================================
// NORMALIZATION
// =====================================================

func summaryFromItem(item volumeItem, includeSale bool) catalog.BookSummary {
	info := item.VolumeInfo

	summary := catalog.BookSummary{
		GoogleBooksID: item.ID,
		Title:         fallback(info.Title, catalog.UnknownTitle),
		Authors:       fallbackList(info.Authors, catalog.UnknownAuthor),
		ThumbnailURL:  info.ImageLinks.Thumbnail,
		PublishedDate: fallback(info.PublishedDate, catalog.UnknownDate),
		PageCount:     info.PageCount,
		Categories:    fallbackList(info.Categories, catalog.NoCategories),
	}

	if includeSale && item.SaleInfo != nil && item.SaleInfo.RetailPrice != nil {
		price := item.SaleInfo.RetailPrice.Amount
		summary.RetailPrice = &price
		summary.CurrencyCode = item.SaleInfo.RetailPrice.CurrencyCode
	}

	return summary
}

func detailFromItem(item volumeItem) catalog.BookDetail {
	info := item.VolumeInfo

	detail := catalog.BookDetail{
		GoogleBooksID: item.ID,
		Title:         fallback(info.Title, catalog.UnknownTitle),
		Authors:       fallbackList(info.Authors, catalog.UnknownAuthor),
		Description:   fallback(info.Description, catalog.DescriptionPending),
		PublishedDate: fallback(info.PublishedDate, catalog.UnknownDate),
		PageCount:     info.PageCount,
		Categories:    fallbackList(info.Categories, catalog.NoCategories),
		ThumbnailURL:  info.ImageLinks.Thumbnail,
		Publisher:     fallback(info.Publisher, catalog.UnknownPublisher),
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
	}

	if item.SaleInfo != nil && item.SaleInfo.RetailPrice != nil {
		price := item.SaleInfo.RetailPrice.Amount
		detail.RetailPrice = &price
		detail.CurrencyCode = item.SaleInfo.RetailPrice.CurrencyCode
	}

	return detail
}

func recordFromItem(item volumeItem) catalog.BookRecord {
	info := item.VolumeInfo

	record := catalog.BookRecord{
		GoogleBooksID: item.ID,
		Title:         info.Title,
		Authors:       strings.Join(info.Authors, ", "),
		PublishedDate: fallback(info.PublishedDate, "Unknown"),
		Description:   fallback(info.Description, catalog.NoDescription),
		ThumbnailURL:  info.ImageLinks.Thumbnail,
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		record.PageCount = &pages
	}
	return record
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func fallbackList(values []string, def string) []string {
	if len(values) == 0 {
		return []string{def}
	}
	return values
}

// normalizeISBN strips hyphens and spaces from an ISBN
func normalizeISBN(isbn string) string {
	normalized := strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(normalized, " ", "")
}
