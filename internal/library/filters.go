package library

import "github.com/mybooks-app/mybooks/pkg/models"

// StatusAll selects every shelf.
const StatusAll models.ShelfStatus = "all"

// FilterByStatus returns the books on the given shelf; StatusAll is identity.
func FilterByStatus(books []models.Book, status models.ShelfStatus) []models.Book {
	if status == StatusAll {
		return books
	}
	out := []models.Book{}
	for _, b := range books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// FilterComics partitions the library on the comic flag. A book with the flag
// unset counts as a non-comic.
func FilterComics(books []models.Book, comics bool) []models.Book {
	out := []models.Book{}
	for _, b := range books {
		if b.IsComic == comics {
			out = append(out, b)
		}
	}
	return out
}

// FilterByCollection returns the books referenced by the collection. No
// selected collection means an empty result, not the whole library.
func FilterByCollection(books []models.Book, col *models.Collection) []models.Book {
	out := []models.Book{}
	if col == nil {
		return out
	}
	for _, b := range books {
		if col.Contains(b.ID) {
			out = append(out, b)
		}
	}
	return out
}
