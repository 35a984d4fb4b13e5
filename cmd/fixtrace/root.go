package main

import (
	"fixtrace/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fixtrace",
	Short: "fixtrace - follow Fixes: chains through git history",
	Long: `fixtrace scans a git repository for commits whose Fixes: trailer references
a given commit subject, and follows the resulting chain: if commit X fixes
subject A, it searches for commits that later fix X itself, and so on.

Results stream to stdout as soon as they are found; diagnostics go to stderr.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("fixtrace version {{.Version}}\n")
}
