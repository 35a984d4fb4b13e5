package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"fixtrace/internal/chain"
	"fixtrace/internal/config"
	traceerrors "fixtrace/internal/errors"
	"fixtrace/internal/gitlog"
	"fixtrace/internal/hunt"
	"fixtrace/internal/logging"
	"fixtrace/internal/report"
	"fixtrace/internal/subjects"
)

var (
	huntBranches    []string
	huntSince       string
	huntIgnoreCase  bool
	huntJobs        int
	huntNoRecursive bool
	huntStrict      bool
	huntVerbose     bool
)

var huntCmd = &cobra.Command{
	Use:   "hunt <subjects-file> <repo>",
	Short: "Find commits that fix the listed subjects",
	Long: `Find commits whose Fixes: trailer references the subjects listed in
<subjects-file> (one commit subject per line, no hashes), searching the
git repository at <repo>.

By default the chain is followed transitively and every discovery is
printed once, as soon as it is found. A failure while processing one
subject is reported as a warning and does not stop the others.

Examples:
  fixtrace hunt subjects.txt ~/src/linux
  fixtrace hunt subjects.txt ~/src/linux -b master -b linux-6.1.y
  fixtrace hunt subjects.txt ~/src/linux --since="2 years ago" -i
  fixtrace hunt subjects.txt ~/src/linux -j 4 --no-recursive -v`,
	Args: cobra.ExactArgs(2),
	RunE: runHunt,
}

func init() {
	huntCmd.Flags().StringArrayVarP(&huntBranches, "branch", "b", nil, "Branch/ref to search (repeatable); default: all refs")
	huntCmd.Flags().StringVarP(&huntSince, "since", "s", "", `Time window passed to git log --since (default: "10 years ago")`)
	huntCmd.Flags().BoolVarP(&huntIgnoreCase, "ignore-case", "i", false, "Case-insensitive subject matching")
	huntCmd.Flags().IntVarP(&huntJobs, "jobs", "j", 0, "Concurrent workers (default: CPU count)")
	huntCmd.Flags().BoolVar(&huntNoRecursive, "no-recursive", false, "Do not follow secondary Fixes chains")
	huntCmd.Flags().BoolVar(&huntStrict, "strict", false, "Exit non-zero if any subject's traversal fails")
	huntCmd.Flags().BoolVarP(&huntVerbose, "verbose", "v", false, "Echo git commands and progress to stderr")
	rootCmd.AddCommand(huntCmd)
}

func runHunt(cmd *cobra.Command, args []string) error {
	subjectsPath := args[0]
	repoRoot := args[1]

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return err
	}
	applyHuntFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newHuntLogger(cfg)

	// Load subjects before touching the repository: an empty list must
	// fail with zero external queries issued.
	subjectList, err := subjects.Load(subjectsPath)
	if err != nil {
		return err
	}

	adapter, err := gitlog.NewAdapter(cfg, logger)
	if err != nil {
		return err
	}

	visited := chain.NewVisited()
	printer := report.NewPrinter(os.Stdout)
	tracer := chain.NewTracer(adapter, visited, printer, cfg.Hunt.Recursive, logger)
	runner := hunt.NewRunner(tracer, cfg.Hunt.Workers, logger)

	summary := runner.Run(context.Background(), subjectList)

	logger.Debug("Hunt summary", map[string]interface{}{
		"subjects":    summary.Subjects,
		"warnings":    len(summary.Warnings),
		"discoveries": visited.Len(),
	})

	// Individual traversal failures were already reported as warnings;
	// outside strict mode the run itself still succeeds.
	if cfg.Hunt.Strict && len(summary.Warnings) > 0 {
		return traceerrors.New(
			traceerrors.QueryFailed,
			"Traversal failures in strict mode",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"failedSubjects": len(summary.Warnings),
		})
	}

	return nil
}

// applyHuntFlags overlays explicitly set CLI flags onto the loaded config
func applyHuntFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("branch") {
		cfg.Search.Branches = huntBranches
	}
	if cmd.Flags().Changed("since") {
		cfg.Search.Since = huntSince
	}
	if cmd.Flags().Changed("ignore-case") {
		cfg.Search.IgnoreCase = huntIgnoreCase
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Hunt.Workers = huntJobs
	}
	if cmd.Flags().Changed("no-recursive") {
		cfg.Hunt.Recursive = !huntNoRecursive
	}
	if cmd.Flags().Changed("strict") {
		cfg.Hunt.Strict = huntStrict
	}
}

func newHuntLogger(cfg *config.Config) *logging.Logger {
	level := logging.LogLevel(cfg.Logging.Level)
	if huntVerbose {
		level = logging.DebugLevel
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  level,
	})
}
