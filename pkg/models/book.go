package models

import "time"

// ShelfStatus is the primary classification of a library book.
type ShelfStatus string

const (
	StatusReading    ShelfStatus = "reading"
	StatusRead       ShelfStatus = "read"
	StatusWantToRead ShelfStatus = "want-to-read"
	StatusAbandoned  ShelfStatus = "abandoned"
)

// ValidStatus reports whether s is one of the four shelf statuses.
func ValidStatus(s ShelfStatus) bool {
	switch s {
	case StatusReading, StatusRead, StatusWantToRead, StatusAbandoned:
		return true
	}
	return false
}

// Book is a library entry, distinct from a raw catalog item. The ID mirrors
// the catalog volume id and is the primary key within the library.
type Book struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Authors       []string    `json:"authors"`
	Thumbnail     string      `json:"thumbnail"`
	Description   string      `json:"description"`
	PageCount     int         `json:"page_count"`
	CurrentPage   int         `json:"current_page"`
	Rating        int         `json:"rating"` // 0-5, 0 = unrated
	Notes         string      `json:"notes"`
	Status        ShelfStatus `json:"status"`
	Language      string      `json:"language"`
	Categories    []string    `json:"categories"`
	DateAdded     time.Time   `json:"date_added"`
	DateFinished  *time.Time  `json:"date_finished,omitempty"`
	AbandonReason string      `json:"abandon_reason,omitempty"`
	IsComic       bool        `json:"is_comic,omitempty"`
}

type AddToLibraryRequest struct {
	VolumeID string      `json:"volume_id" binding:"required"`
	Status   ShelfStatus `json:"status" binding:"required"`
}

type UpdateProgressRequest struct {
	BookID      string `json:"book_id" binding:"required"`
	CurrentPage *int   `json:"current_page" binding:"required,min=0"`
}

type UpdateRatingRequest struct {
	BookID string `json:"book_id" binding:"required"`
	Rating *int   `json:"rating" binding:"required,min=0,max=5"`
}

type UpdateNotesRequest struct {
	BookID string `json:"book_id" binding:"required"`
	Notes  string `json:"notes"`
}

type UpdateStatusRequest struct {
	BookID        string      `json:"book_id" binding:"required"`
	Status        ShelfStatus `json:"status" binding:"required"`
	AbandonReason string      `json:"abandon_reason"`
}

type ToggleComicRequest struct {
	BookID string `json:"book_id" binding:"required"`
}
