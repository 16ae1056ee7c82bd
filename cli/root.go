package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mybooks-app/mybooks/cli/config"
	"github.com/mybooks-app/mybooks/internal/catalog"
	"github.com/mybooks-app/mybooks/internal/collection"
	"github.com/mybooks-app/mybooks/pkg/database"

	libpkg "github.com/mybooks-app/mybooks/internal/library"
)

var rootCmd = &cobra.Command{
	Use:     "mybooks",
	Short:   "Personal book tracker",
	Long:    `Track what you own, how far you are, and how you rated it - all in a local database.`,
	Version: "1.0.0",
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// openStores opens the configured local database and wires the two stores.
// The returned closer must be called when the command is done.
func openStores() (*libpkg.Store, *collection.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	backend, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database at %s: %w", cfg.Database.Path, err)
	}
	collections := collection.NewStore(backend)
	library := libpkg.NewStore(backend, collections)
	return library, collections, func() { backend.Close() }, nil
}

// newCatalogSource builds the catalog client for direct CLI use. CLI output
// stays on stdout; the client's own logging is discarded.
func newCatalogSource() (*catalog.GoogleBooksSource, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	source := catalog.NewGoogleBooksSource(zap.NewNop())
	if cfg.Catalog.BaseURL != "" {
		source.BaseURL = cfg.Catalog.BaseURL
	}
	return source, nil
}

func printSuccess(msg string) {
	fmt.Println("✓ " + msg)
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ "+msg)
}
