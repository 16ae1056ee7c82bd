package library

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/pkg/database"
	"github.com/mybooks-app/mybooks/pkg/models"
)

// Store owns the canonical set of library books: one record per id, insertion
// order preserved across restarts. Writes persist the full collection back to
// the backend, so a failed write leaves the prior snapshot unchanged.
type Store struct {
	backend     database.Backend
	collections *collection.Store
}

func NewStore(backend database.Backend, collections *collection.Store) *Store {
	return &Store{backend: backend, collections: collections}
}

// GetAll returns every persisted book in insertion order.
func (s *Store) GetAll() ([]models.Book, error) {
	return s.load()
}

// Get returns the book with the given id, or nil when it is not in the library.
func (s *Store) Get(id string) (*models.Book, error) {
	books, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, nil
}

// Save upserts the book by id; an existing record is fully replaced, not
// merged. The read-completion invariant is applied at the point of
// transition: reaching the last page flips status to read and stamps
// DateFinished, which is never cleared afterwards.
func (s *Store) Save(book models.Book) error {
	normalize(&book, time.Now())

	books, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range books {
		if books[i].ID == book.ID {
			books[i] = book
			replaced = true
			break
		}
	}
	if !replaced {
		books = append(books, book)
	}
	return s.persist(books)
}

// Remove deletes the book if present (no-op when absent) and then drops its
// id from every collection.
func (s *Store) Remove(id string) error {
	books, err := s.load()
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if err := s.persist(kept); err != nil {
		return err
	}
	return s.collections.RemoveBookRefs(id)
}

// normalize clamps page progress and resolves the transient
// currentPage == pageCount state into a finished book.
func normalize(book *models.Book, now time.Time) {
	if book.PageCount < 0 {
		book.PageCount = 0
	}
	if book.CurrentPage < 0 {
		book.CurrentPage = 0
	}
	if book.CurrentPage > book.PageCount {
		book.CurrentPage = book.PageCount
	}
	if book.PageCount > 0 && book.CurrentPage == book.PageCount && book.Status != models.StatusRead {
		book.Status = models.StatusRead
		if book.DateFinished == nil {
			book.DateFinished = &now
		}
	}
	if book.Status == models.StatusRead && book.DateFinished == nil {
		book.DateFinished = &now
	}
}

func (s *Store) load() ([]models.Book, error) {
	raw, ok, err := s.backend.Get(database.LibraryKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Book{}, nil
	}
	var books []models.Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return books, nil
}

func (s *Store) persist(books []models.Book) error {
	raw, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	return s.backend.Put(database.LibraryKey, string(raw))
}
