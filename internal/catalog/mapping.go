package catalog

import (
	"strings"
	"time"

	"github.com/mybooks-app/mybooks/pkg/models"
)

// NewBookFromItem maps a catalog item to a new library book with the chosen
// shelf status. This is the single point where catalog metadata flows into
// the library; afterwards the book record is the sole source of truth for
// that id. Adding a book straight to the read shelf counts it as finished.
func NewBookFromItem(item Item, status models.ShelfStatus, now time.Time) models.Book {
	v := item.VolumeInfo

	authors := v.Authors
	if authors == nil {
		authors = []string{}
	}
	categories := v.Categories
	if categories == nil {
		categories = []string{}
	}

	thumbnail := ""
	if v.ImageLinks != nil {
		thumbnail = strings.Replace(v.ImageLinks.Thumbnail, "http:", "https:", 1)
	}

	book := models.Book{
		ID:          item.ID,
		Title:       v.Title,
		Subtitle:    v.Subtitle,
		Authors:     authors,
		Thumbnail:   thumbnail,
		Description: v.Description,
		PageCount:   v.PageCount,
		Status:      status,
		Language:    v.Language,
		Categories:  categories,
		DateAdded:   now,
		IsComic:     looksLikeComic(categories),
	}

	if status == models.StatusRead {
		book.CurrentPage = v.PageCount
		book.DateFinished = &now
	}
	return book
}

// looksLikeComic guesses the comic flag from catalog categories. The user can
// toggle it afterwards; the guess only seeds the initial value.
func looksLikeComic(categories []string) bool {
	for _, c := range categories {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "comic") ||
			strings.Contains(lower, "graphic novel") ||
			strings.Contains(lower, "manga") {
			return true
		}
	}
	return false
}
