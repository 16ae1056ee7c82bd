package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mybooks-app/mybooks/cli/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Write the default configuration file to ~/.mybooks/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			printError("Failed to write configuration")
			return err
		}

		path, _ := config.GetConfigPath()
		printSuccess(fmt.Sprintf("Configuration written to %s", path))
		fmt.Printf("Library database: %s\n", cfg.Database.Path)
		return nil
	},
}
