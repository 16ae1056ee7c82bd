package collection

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mybooks-app/mybooks/pkg/database"
	"github.com/mybooks-app/mybooks/pkg/models"
)

// NewID returns a collision-resistant id for a new collection.
func NewID() string {
	return uuid.New().String()
}

// Store owns the set of user-defined collections. Collections hold weak
// references (book ids only) into the library; the one integrity rule the
// store enforces is RemoveBookRefs, invoked by the library store on delete.
type Store struct {
	backend database.Backend
}

func NewStore(backend database.Backend) *Store {
	return &Store{backend: backend}
}

// GetAll returns every collection in insertion order.
func (s *Store) GetAll() ([]models.Collection, error) {
	return s.load()
}

// Save upserts the collection by id. An existing record is fully replaced.
func (s *Store) Save(col models.Collection) error {
	collections, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range collections {
		if collections[i].ID == col.ID {
			collections[i] = col
			replaced = true
			break
		}
	}
	if !replaced {
		collections = append(collections, col)
	}
	return s.persist(collections)
}

// Delete removes the collection entirely. Idempotent.
func (s *Store) Delete(id string) error {
	collections, err := s.load()
	if err != nil {
		return err
	}
	kept := collections[:0]
	for _, c := range collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.persist(kept)
}

// Toggle removes bookID from the collection if present, appends it otherwise.
// The referenced book does not have to exist in the library yet; add-to-
// collection flows may create the library entry afterwards. Returns the
// updated collection, or nil when collectionID does not resolve (a caller
// condition, not a store error), and whether the book was added.
func (s *Store) Toggle(collectionID, bookID string) (*models.Collection, bool, error) {
	collections, err := s.load()
	if err != nil {
		return nil, false, err
	}
	for i := range collections {
		if collections[i].ID != collectionID {
			continue
		}
		added := true
		if collections[i].Contains(bookID) {
			ids := collections[i].BookIDs[:0]
			for _, id := range collections[i].BookIDs {
				if id != bookID {
					ids = append(ids, id)
				}
			}
			collections[i].BookIDs = ids
			added = false
		} else {
			collections[i].BookIDs = append(collections[i].BookIDs, bookID)
		}
		if err := s.persist(collections); err != nil {
			return nil, false, err
		}
		return &collections[i], added, nil
	}
	return nil, false, nil
}

// RemoveBookRefs drops bookID from every collection. A collection must never
// retain a reference to a deleted book.
func (s *Store) RemoveBookRefs(bookID string) error {
	collections, err := s.load()
	if err != nil {
		return err
	}
	for i := range collections {
		if !collections[i].Contains(bookID) {
			continue
		}
		ids := collections[i].BookIDs[:0]
		for _, id := range collections[i].BookIDs {
			if id != bookID {
				ids = append(ids, id)
			}
		}
		collections[i].BookIDs = ids
	}
	return s.persist(collections)
}

func (s *Store) load() ([]models.Collection, error) {
	raw, ok, err := s.backend.Get(database.CollectionsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Collection{}, nil
	}
	var collections []models.Collection
	if err := json.Unmarshal([]byte(raw), &collections); err != nil {
		return nil, fmt.Errorf("decode collections: %w", err)
	}
	return collections, nil
}

func (s *Store) persist(collections []models.Collection) error {
	raw, err := json.Marshal(collections)
	if err != nil {
		return fmt.Errorf("encode collections: %w", err)
	}
	return s.backend.Put(database.CollectionsKey, string(raw))
}
