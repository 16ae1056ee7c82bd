package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mybooks-app/mybooks/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, closeFn, err := openStores()
		if err != nil {
			return err
		}
		defer closeFn()

		books, err := lib.GetAll()
		if err != nil {
			return err
		}

		s := stats.Compute(books)
		fmt.Printf("Total books:   %d\n", s.TotalBooks)
		fmt.Printf("Reading:       %d\n", s.Reading)
		fmt.Printf("Read:          %d\n", s.Read)
		fmt.Printf("Want to read:  %d\n", s.WantToRead)
		fmt.Printf("Abandoned:     %d\n", s.Abandoned)
		fmt.Printf("Pages read:    %d\n", s.PagesRead)

		top := stats.TopCategories(books, stats.TopCategoryLimit)
		if len(top) > 0 {
			fmt.Println("\nTop categories:")
			for _, cat := range top {
				fmt.Printf("  %-30s %d\n", cat.Name, cat.Count)
			}
		}
		return nil
	},
}
