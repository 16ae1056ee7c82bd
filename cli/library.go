package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mybooks-app/mybooks/internal/catalog"
	"github.com/mybooks-app/mybooks/internal/library"
	"github.com/mybooks-app/mybooks/pkg/models"
)

var (
	addStatus      string
	listStatus     string
	listComics     bool
	listBooks      bool
	listCollection string
	abandonReason  string
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your library",
	Long:  `List, add, and update the books you track.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library books",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, collections, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		books, err := lib.GetAll()
		if err != nil {
			return err
		}

		if listCollection != "" {
			all, err := collections.GetAll()
			if err != nil {
				return err
			}
			var selected *models.Collection
			for i := range all {
				if all[i].ID == listCollection {
					selected = &all[i]
					break
				}
			}
			if selected == nil {
				printError("Collection not found")
				return fmt.Errorf("unknown collection: %s", listCollection)
			}
			books = library.FilterByCollection(books, selected)
		}
		if listComics {
			books = library.FilterComics(books, true)
		} else if listBooks {
			books = library.FilterComics(books, false)
		}
		if listStatus != "" {
			books = library.FilterByStatus(books, models.ShelfStatus(listStatus))
		}

		if len(books) == 0 {
			fmt.Println("No books on this shelf.")
			return nil
		}

		for i, b := range books {
			fmt.Printf("%d. %s", i+1, b.Title)
			if b.IsComic {
				fmt.Print(" [comic]")
			}
			fmt.Println()
			fmt.Printf("   ID: %s\n", b.ID)
			if len(b.Authors) > 0 {
				fmt.Printf("   Authors: %s\n", strings.Join(b.Authors, ", "))
			}
			fmt.Printf("   Status: %s", b.Status)
			if b.PageCount > 0 {
				fmt.Printf("  (page %d/%d)", b.CurrentPage, b.PageCount)
			}
			fmt.Println()
			if b.Rating > 0 {
				fmt.Printf("   Rating: %s\n", strings.Repeat("★", b.Rating))
			}
			fmt.Println()
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [volume-id]",
	Short: "Add a catalog volume to your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := models.ShelfStatus(addStatus)
		if !models.ValidStatus(status) {
			printError("Invalid status (reading, read, want-to-read, abandoned)")
			return fmt.Errorf("invalid status: %s", addStatus)
		}

		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		existing, err := lib.Get(args[0])
		if err != nil {
			return err
		}

		var book models.Book
		if existing != nil {
			book = *existing
			book.Status = status
		} else {
			source, err := newCatalogSource()
			if err != nil {
				return err
			}
			item := source.GetByID(cmd.Context(), args[0])
			if item == nil {
				printError("Volume not found in catalog")
				return fmt.Errorf("volume not found: %s", args[0])
			}
			book = catalog.NewBookFromItem(*item, status, time.Now())
		}

		if err := lib.Save(book); err != nil {
			printError("Failed to save book")
			return err
		}

		printSuccess(fmt.Sprintf("%q is now on the %s shelf", book.Title, book.Status))
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [book-id]",
	Short: "Remove a book from your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := lib.Remove(args[0]); err != nil {
			printError("Failed to remove book")
			return err
		}
		printSuccess("Book removed from library and all collections")
		return nil
	},
}

var libraryProgressCmd = &cobra.Command{
	Use:   "progress [book-id] [page]",
	Short: "Update the current page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			printError("Page must be a number")
			return err
		}

		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		book, err := mutate(lib, args[0], func(b *models.Book) {
			b.CurrentPage = page
		})
		if err != nil {
			return err
		}

		if book.Status == models.StatusRead && book.PageCount > 0 && book.CurrentPage == book.PageCount {
			printSuccess(fmt.Sprintf("Finished %q - moved to the read shelf", book.Title))
		} else {
			printSuccess(fmt.Sprintf("%q: page %d/%d", book.Title, book.CurrentPage, book.PageCount))
		}
		return nil
	},
}

var libraryRateCmd = &cobra.Command{
	Use:   "rate [book-id] [stars]",
	Short: "Rate a book 0-5 stars",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stars, err := strconv.Atoi(args[1])
		if err != nil || stars < 0 || stars > 5 {
			printError("Rating must be 0-5")
			return fmt.Errorf("invalid rating: %s", args[1])
		}

		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		book, err := mutate(lib, args[0], func(b *models.Book) {
			b.Rating = stars
		})
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Rated %q %d star(s)", book.Title, stars))
		return nil
	},
}

var libraryStatusCmd = &cobra.Command{
	Use:   "status [book-id] [status]",
	Short: "Move a book to another shelf",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := models.ShelfStatus(args[1])
		if !models.ValidStatus(status) {
			printError("Invalid status (reading, read, want-to-read, abandoned)")
			return fmt.Errorf("invalid status: %s", args[1])
		}

		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		book, err := mutate(lib, args[0], func(b *models.Book) {
			b.Status = status
			if status == models.StatusAbandoned {
				b.AbandonReason = abandonReason
			}
		})
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("%q moved to the %s shelf", book.Title, book.Status))
		return nil
	},
}

var libraryComicCmd = &cobra.Command{
	Use:   "comic [book-id]",
	Short: "Toggle the comic flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		book, err := mutate(lib, args[0], func(b *models.Book) {
			b.IsComic = !b.IsComic
		})
		if err != nil {
			return err
		}
		if book.IsComic {
			printSuccess(fmt.Sprintf("%q is now shelved with comics", book.Title))
		} else {
			printSuccess(fmt.Sprintf("%q is now shelved with books", book.Title))
		}
		return nil
	},
}

// mutate applies a change to a stored book and saves the full record back.
func mutate(lib *library.Store, id string, apply func(*models.Book)) (*models.Book, error) {
	book, err := lib.Get(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		printError("Book not in library")
		return nil, fmt.Errorf("book not in library: %s", id)
	}
	apply(book)
	if err := lib.Save(*book); err != nil {
		printError("Failed to save book")
		return nil, err
	}
	return lib.Get(id)
}

func init() {
	libraryAddCmd.Flags().StringVar(&addStatus, "status", "want-to-read", "Shelf status for the new book")
	libraryListCmd.Flags().StringVar(&listStatus, "status", "", "Only show one shelf")
	libraryListCmd.Flags().BoolVar(&listComics, "comics", false, "Only show comics")
	libraryListCmd.Flags().BoolVar(&listBooks, "books", false, "Only show non-comics")
	libraryListCmd.Flags().StringVar(&listCollection, "collection", "", "Only show books in a collection")
	libraryStatusCmd.Flags().StringVar(&abandonReason, "reason", "", "Why the book was abandoned")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryProgressCmd)
	libraryCmd.AddCommand(libraryRateCmd)
	libraryCmd.AddCommand(libraryStatusCmd)
	libraryCmd.AddCommand(libraryComicCmd)
}
