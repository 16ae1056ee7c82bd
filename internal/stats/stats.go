// Package stats derives aggregate reading statistics from a library
// snapshot. Everything here is a pure function: no storage access, no side
// effects, deterministic for a given input.
package stats

import (
	"sort"

	"github.com/mybooks-app/mybooks/pkg/models"
)

// TopCategoryLimit caps the ranked category tally.
const TopCategoryLimit = 5

// Compute aggregates the snapshot into per-status counts and total pages
// read. A finished book contributes its full page count, everything else its
// current page.
func Compute(books []models.Book) models.LibraryStats {
	s := models.LibraryStats{TotalBooks: len(books)}
	for _, b := range books {
		switch b.Status {
		case models.StatusReading:
			s.Reading++
		case models.StatusRead:
			s.Read++
		case models.StatusWantToRead:
			s.WantToRead++
		case models.StatusAbandoned:
			s.Abandoned++
		}
		if b.Status == models.StatusRead {
			s.PagesRead += b.PageCount
		} else {
			s.PagesRead += b.CurrentPage
		}
	}
	return s
}

// TopCategories tallies category occurrences across all books, ranked
// descending with ties broken by first-seen order, truncated to limit.
func TopCategories(books []models.Book, limit int) []models.CategoryCount {
	counts := map[string]int{}
	order := map[string]int{}
	names := []string{}
	for _, b := range books {
		for _, cat := range b.Categories {
			if _, seen := counts[cat]; !seen {
				order[cat] = len(names)
				names = append(names, cat)
			}
			counts[cat]++
		}
	}

	ranked := make([]models.CategoryCount, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, models.CategoryCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Name] < order[ranked[j].Name]
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
