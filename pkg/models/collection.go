package models

import "time"

// Collection is a user-named grouping of library books. BookIDs are weak
// references: ids only, cleaned up when a book is removed from the library.
type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BookIDs   []string  `json:"book_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Contains reports whether bookID is referenced by the collection.
func (c *Collection) Contains(bookID string) bool {
	for _, id := range c.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

type CreateCollectionRequest struct {
	Name    string   `json:"name" binding:"required"`
	BookIDs []string `json:"book_ids"`
}

type ToggleMembershipRequest struct {
	BookID string `json:"book_id" binding:"required"`
}
