package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybooks-app/mybooks/pkg/models"
)

func sampleItem() Item {
	return Item{
		ID: "vol-1",
		VolumeInfo: VolumeInfo{
			Title:       "Dune",
			Subtitle:    "Deluxe Edition",
			Authors:     []string{"Frank Herbert"},
			Description: "<p>Spice.</p>",
			PageCount:   412,
			Language:    "en",
			Categories:  []string{"Fiction", "Science Fiction"},
			ImageLinks:  &ImageLinks{Thumbnail: "http://books.example/cover.jpg"},
		},
	}
}

func TestNewBookFromItem(t *testing.T) {
	now := time.Now()
	book := NewBookFromItem(sampleItem(), models.StatusWantToRead, now)

	assert.Equal(t, "vol-1", book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Deluxe Edition", book.Subtitle)
	assert.Equal(t, []string{"Frank Herbert"}, book.Authors)
	assert.Equal(t, "https://books.example/cover.jpg", book.Thumbnail)
	assert.Equal(t, 412, book.PageCount)
	assert.Equal(t, 0, book.CurrentPage)
	assert.Equal(t, models.StatusWantToRead, book.Status)
	assert.Equal(t, now, book.DateAdded)
	assert.Nil(t, book.DateFinished)
	assert.False(t, book.IsComic)
}

func TestNewBookFromItemDefaultsMissingFields(t *testing.T) {
	item := Item{ID: "bare", VolumeInfo: VolumeInfo{Title: "Untitled"}}
	book := NewBookFromItem(item, models.StatusReading, time.Now())

	assert.NotNil(t, book.Authors)
	assert.Empty(t, book.Authors)
	assert.NotNil(t, book.Categories)
	assert.Empty(t, book.Thumbnail)
	assert.Zero(t, book.PageCount)
}

func TestAddingStraightToReadShelfFinishesBook(t *testing.T) {
	now := time.Now()
	book := NewBookFromItem(sampleItem(), models.StatusRead, now)

	assert.Equal(t, book.PageCount, book.CurrentPage)
	require.NotNil(t, book.DateFinished)
	assert.True(t, book.DateFinished.Equal(now))
}

func TestComicDetectionFromCategories(t *testing.T) {
	cases := []struct {
		categories []string
		want       bool
	}{
		{[]string{"Comics & Graphic Novels"}, true},
		{[]string{"Manga"}, true},
		{[]string{"Graphic Novel Anthologies"}, true},
		{[]string{"Fiction"}, false},
		{nil, false},
	}

	for _, tc := range cases {
		item := sampleItem()
		item.VolumeInfo.Categories = tc.categories
		book := NewBookFromItem(item, models.StatusReading, time.Now())
		assert.Equal(t, tc.want, book.IsComic, "categories %v", tc.categories)
	}
}
