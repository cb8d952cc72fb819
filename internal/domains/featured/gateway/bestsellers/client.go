package bestsellers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bookshelf-backend/internal/domains/featured"
)

// Client talks to the bestseller lists API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a bestsellers API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) featured.Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type overviewResponse struct {
	Results overviewResults `json:"results"`
}

type overviewResults struct {
	BestsellersDate string         `json:"bestsellers_date"`
	PublishedDate   string         `json:"published_date"`
	Lists           []overviewList `json:"lists"`
}

type overviewList struct {
	ListName    string         `json:"list_name"`
	DisplayName string         `json:"display_name"`
	Books       []overviewBook `json:"books"`
}

type overviewBook struct {
	Rank          int    `json:"rank"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	BookImage     string `json:"book_image"`
	PrimaryISBN13 string `json:"primary_isbn13"`
}

// FetchOverview retrieves the current full overview of all lists.
func (c *Client) FetchOverview(ctx context.Context) (*featured.Overview, error) {
	if c.apiKey == "" {
		return nil, featured.ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/lists/full-overview.json?api-key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build overview request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", featured.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", featured.ErrRemoteUnavailable, resp.StatusCode)
	}

	var payload overviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", featured.ErrMalformedResponse, err)
	}

	return normalizeOverview(&payload), nil
}

func normalizeOverview(payload *overviewResponse) *featured.Overview {
	overview := &featured.Overview{
		BestsellersDate: payload.Results.BestsellersDate,
		PublishedDate:   payload.Results.PublishedDate,
		Lists:           make([]featured.OverviewList, 0, len(payload.Results.Lists)),
	}

	for _, list := range payload.Results.Lists {
		normalized := featured.OverviewList{
			ListName:    list.ListName,
			DisplayName: list.DisplayName,
			Books:       make([]featured.OverviewBook, 0, len(list.Books)),
		}
		for _, b := range list.Books {
			normalized.Books = append(normalized.Books, featured.OverviewBook{
				Rank:          b.Rank,
				Title:         b.Title,
				Author:        b.Author,
				BookImage:     b.BookImage,
				PrimaryISBN13: b.PrimaryISBN13,
			})
		}
		overview.Lists = append(overview.Lists, normalized)
	}

	return overview
}
