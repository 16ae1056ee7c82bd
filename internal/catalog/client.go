package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

const searchLimit = 20

// Item is a raw catalog result. Ephemeral: it is never persisted and is
// consulted exactly once, at the moment it is promoted into a library book.
type Item struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Authors     []string    `json:"authors,omitempty"`
	Description string      `json:"description,omitempty"`
	PageCount   int         `json:"pageCount,omitempty"`
	Language    string      `json:"language,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	ImageLinks  *ImageLinks `json:"imageLinks,omitempty"`
}

type ImageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

// Source is the external book catalog consumed by the rest of the system.
// Lookups are best-effort enrichment: failures surface as empty results, not
// errors, and "no details available" is a normal displayable state.
type Source interface {
	Search(ctx context.Context, query string) []Item
	GetByID(ctx context.Context, id string) *Item
}

// GoogleBooksSource queries the Google Books volumes API.
type GoogleBooksSource struct {
	BaseURL string
	Client  *http.Client
	logger  *zap.Logger
}

func NewGoogleBooksSource(logger *zap.Logger) *GoogleBooksSource {
	return &GoogleBooksSource{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type searchRes struct {
	Items []Item `json:"items"`
}

// Search returns up to 20 catalog items matching the query. An empty query
// or any failure yields an empty slice.
func (s *GoogleBooksSource) Search(ctx context.Context, query string) []Item {
	if query == "" {
		return []Item{}
	}

	u, _ := url.Parse(s.BaseURL)
	qs := u.Query()
	qs.Set("q", query)
	qs.Set("maxResults", fmt.Sprintf("%d", searchLimit))
	u.RawQuery = qs.Encode()

	var r searchRes
	if err := s.getJSON(ctx, u.String(), &r); err != nil {
		s.logger.Warn("catalog search failed",
			zap.String("query", query),
			zap.Error(err))
		return []Item{}
	}
	if r.Items == nil {
		return []Item{}
	}
	return r.Items
}

// GetByID returns the catalog item for a volume id, or nil when the lookup
// fails or the volume does not exist.
func (s *GoogleBooksSource) GetByID(ctx context.Context, id string) *Item {
	var item Item
	if err := s.getJSON(ctx, fmt.Sprintf("%s/%s", s.BaseURL, url.PathEscape(id)), &item); err != nil {
		s.logger.Warn("catalog lookup failed",
			zap.String("volume_id", id),
			zap.Error(err))
		return nil
	}
	if item.ID == "" {
		return nil
	}
	return &item
}

func (s *GoogleBooksSource) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "mybooks/1.0 (+github.com/mybooks-app/mybooks)")

	res, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request failed: %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
