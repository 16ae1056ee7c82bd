package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mybooks-app/mybooks/pkg/models"
)

func sampleLibrary() []models.Book {
	return []models.Book{
		{ID: "a", Status: models.StatusReading, IsComic: false},
		{ID: "b", Status: models.StatusRead, IsComic: true},
		{ID: "c", Status: models.StatusReading, IsComic: true},
		{ID: "d", Status: models.StatusWantToRead},
	}
}

func ids(books []models.Book) []string {
	out := []string{}
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	books := sampleLibrary()

	assert.Equal(t, []string{"a", "c"}, ids(FilterByStatus(books, models.StatusReading)))
	assert.Equal(t, []string{"b"}, ids(FilterByStatus(books, models.StatusRead)))
	assert.Empty(t, FilterByStatus(books, models.StatusAbandoned))
	assert.Equal(t, books, FilterByStatus(books, StatusAll))
}

func TestFilterComicsPartitions(t *testing.T) {
	books := sampleLibrary()

	comics := FilterComics(books, true)
	rest := FilterComics(books, false)

	assert.Equal(t, []string{"b", "c"}, ids(comics))
	assert.Equal(t, []string{"a", "d"}, ids(rest))
	assert.Len(t, comics, len(books)-len(rest))
}

func TestFilterByCollection(t *testing.T) {
	books := sampleLibrary()
	col := &models.Collection{ID: "col-1", Name: "Favorites", BookIDs: []string{"d", "b", "ghost"}}

	assert.Equal(t, []string{"b", "d"}, ids(FilterByCollection(books, col)))
}

func TestNoSelectedCollectionYieldsEmpty(t *testing.T) {
	assert.Empty(t, FilterByCollection(sampleLibrary(), nil))
}

func TestFiltersOnEmptyLibrary(t *testing.T) {
	empty := []models.Book{}

	assert.Empty(t, FilterByStatus(empty, StatusAll))
	assert.Empty(t, FilterComics(empty, true))
	assert.Empty(t, FilterComics(empty, false))
	assert.Empty(t, FilterByCollection(empty, &models.Collection{ID: "x"}))
}
