package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the book catalog",
	Long:  `Search the public book catalog by title, author, or keyword.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		source, err := newCatalogSource()
		if err != nil {
			printError("Configuration error")
			return err
		}

		items := source.Search(cmd.Context(), query)
		if len(items) == 0 {
			fmt.Printf("No results for query: %s\n", query)
			return nil
		}

		fmt.Printf("Found %d result(s):\n\n", len(items))
		for i, item := range items {
			v := item.VolumeInfo
			fmt.Printf("%d. %s\n", i+1, v.Title)
			if v.Subtitle != "" {
				fmt.Printf("   %s\n", v.Subtitle)
			}
			fmt.Printf("   ID: %s\n", item.ID)
			if len(v.Authors) > 0 {
				fmt.Printf("   Authors: %s\n", strings.Join(v.Authors, ", "))
			}
			if v.PageCount > 0 {
				fmt.Printf("   Pages: %d\n", v.PageCount)
			}
			if len(v.Categories) > 0 {
				fmt.Printf("   Categories: %s\n", strings.Join(v.Categories, ", "))
			}
			fmt.Println()
		}

		fmt.Println("To add to your library:")
		fmt.Println("  mybooks library add <volume-id> --status want-to-read")
		return nil
	},
}
