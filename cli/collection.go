package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/pkg/models"
)

var createBookIDs []string

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
	Long:  `Group library books into named collections, orthogonal to shelf status.`,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, collections, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		all, err := collections.GetAll()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No collections yet. Create one:")
			fmt.Println("  mybooks collection create <name>")
			return nil
		}

		for i, c := range all {
			fmt.Printf("%d. %s (%d book(s))\n", i+1, c.Name, len(c.BookIDs))
			fmt.Printf("   ID: %s\n", c.ID)
			fmt.Printf("   Created: %s\n\n", c.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			printError("Collection name must not be empty")
			return fmt.Errorf("empty collection name")
		}

		_, collections, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		bookIDs := createBookIDs
		if bookIDs == nil {
			bookIDs = []string{}
		}
		col := models.Collection{
			ID:        collection.NewID(),
			Name:      name,
			BookIDs:   bookIDs,
			CreatedAt: time.Now(),
		}
		if err := collections.Save(col); err != nil {
			printError("Failed to create collection")
			return err
		}

		printSuccess(fmt.Sprintf("Collection %q created (id %s)", col.Name, col.ID))
		return nil
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [collection-id]",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, collections, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := collections.Delete(args[0]); err != nil {
			printError("Failed to delete collection")
			return err
		}
		printSuccess("Collection deleted")
		return nil
	},
}

var collectionToggleCmd = &cobra.Command{
	Use:   "toggle [collection-id] [book-id]",
	Short: "Add or remove a book from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, collections, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		col, added, err := collections.Toggle(args[0], args[1])
		if err != nil {
			printError("Failed to update collection")
			return err
		}
		if col == nil {
			printError("Collection not found")
			return fmt.Errorf("unknown collection: %s", args[0])
		}

		if added {
			printSuccess(fmt.Sprintf("Book added to %q", col.Name))
		} else {
			printSuccess(fmt.Sprintf("Book removed from %q", col.Name))
		}
		return nil
	},
}

func init() {
	collectionCreateCmd.Flags().StringArrayVar(&createBookIDs, "book", nil, "Seed the collection with a book id (repeatable)")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionToggleCmd)
}
