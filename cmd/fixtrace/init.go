package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixtrace/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <repo>",
	Short: "Write a default config file into the repository",
	Long: `Write the default fixtrace configuration to <repo>/.fixtrace/config.json.

Edit the file to pin branches, the search window, or worker count for
that repository; hunt flags still override it per run.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	repoRoot := args[0]

	cfg := config.DefaultConfig()
	cfg.RepoRoot = repoRoot
	if err := cfg.Save(repoRoot); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s/.fixtrace/config.json\n", repoRoot)
	return nil
}
