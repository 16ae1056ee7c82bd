package models

// LibraryStats is derived from the current library snapshot, never stored.
// PagesRead counts the full page count for finished books and the current
// page for everything else.
type LibraryStats struct {
	TotalBooks int `json:"total_books"`
	Reading    int `json:"reading"`
	Read       int `json:"read"`
	WantToRead int `json:"want_to_read"`
	Abandoned  int `json:"abandoned"`
	PagesRead  int `json:"pages_read"`
}

// CategoryCount is one entry of a ranked category tally.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
