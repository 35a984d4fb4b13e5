package gitlog

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"fixtrace/internal/config"
	"fixtrace/internal/errors"
	"fixtrace/internal/logging"
)

// prettyFormat emits one record per commit: hash, unit separator, subject.
// The unit separator cannot appear in a commit subject, unlike '|'.
const prettyFormat = "--pretty=%H%x1f%s"

const recordSeparator = "\x1f"

// Commit is a single history record: stable identifier plus subject text.
type Commit struct {
	Hash    string `json:"hash"`
	Subject string `json:"subject"`
}

// Adapter queries a git repository's commit history by running git log.
//
// It is read-only: every invocation is a plain history scan and never
// mutates the repository.
type Adapter struct {
	repoRoot     string
	branches     []string
	since        string
	ignoreCase   bool
	queryTimeout time.Duration
	logger       *logging.Logger
}

// NewAdapter creates a history query adapter for the repository named in cfg.
// It fails with REPO_UNAVAILABLE when the path is not a git repository.
func NewAdapter(cfg *config.Config, logger *logging.Logger) (*Adapter, error) {
	if logger == nil {
		return nil, errors.New(
			errors.InternalError,
			"Logger is required for Adapter",
			nil,
			nil,
		)
	}

	adapter := &Adapter{
		repoRoot:     cfg.RepoRoot,
		branches:     cfg.Search.Branches,
		since:        cfg.Search.Since,
		ignoreCase:   cfg.Search.IgnoreCase,
		queryTimeout: time.Duration(cfg.Search.QueryTimeoutMs) * time.Millisecond,
		logger:       logger,
	}

	if !adapter.IsAvailable() {
		return nil, errors.New(
			errors.RepoUnavailable,
			"Not a git repository",
			nil,
			errors.GetSuggestedFixes(errors.RepoUnavailable),
		).WithDetails(map[string]interface{}{
			"repoRoot": cfg.RepoRoot,
		})
	}

	logger.Debug("Git adapter initialized", map[string]interface{}{
		"repoRoot": cfg.RepoRoot,
		"branches": adapter.branches,
		"since":    adapter.since,
	})

	return adapter, nil
}

// IsAvailable checks whether repoRoot is a usable git repository
func (a *Adapter) IsAvailable() bool {
	cmd := exec.Command("git", "-C", a.repoRoot, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// Query returns all commits within the configured window whose message
// matches pattern, in the order git log emits them (reverse-chronological,
// though callers must not rely on more than "all matches present").
func (a *Adapter) Query(ctx context.Context, pattern string) ([]Commit, error) {
	output, err := a.execute(ctx, a.buildLogArgs(pattern))
	if err != nil {
		return nil, err
	}

	return parseRecords(output), nil
}

// buildLogArgs assembles the git log argv for one history scan
func (a *Adapter) buildLogArgs(pattern string) []string {
	args := []string{"log"}

	if len(a.branches) > 0 {
		args = append(args, a.branches...)
	} else {
		args = append(args, "--all")
	}

	args = append(args, "--since="+a.since)
	if a.ignoreCase {
		args = append(args, "-i")
	}
	return append(args,
		"--grep="+pattern,
		"--extended-regexp",
		prettyFormat,
	)
}

// execute runs a git command in the repository and returns decoded stdout.
// Invalid UTF-8 byte sequences in the output are replaced with U+FFFD
// instead of failing the query.
func (a *Adapter) execute(ctx context.Context, args []string) (string, error) {
	if a.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.queryTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = a.repoRoot

	a.logger.Debug("Executing git command", map[string]interface{}{
		"args": strings.Join(args, " "),
	})

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.New(
				errors.QueryFailed,
				"Git command timed out",
				err,
				nil,
			).WithDetails(map[string]interface{}{
				"args":    args,
				"timeout": a.queryTimeout.String(),
			})
		}

		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", errors.New(
				errors.QueryFailed,
				"Git command failed",
				err,
				errors.GetSuggestedFixes(errors.QueryFailed),
			).WithDetails(map[string]interface{}{
				"args":   args,
				"stderr": strings.TrimSpace(string(exitErr.Stderr)),
			})
		}

		return "", errors.New(
			errors.QueryFailed,
			"Failed to execute git command",
			err,
			nil,
		)
	}

	return strings.ToValidUTF8(string(output), "�"), nil
}

// parseRecords splits raw git log output into commits.
// Lines without the record separator are skipped.
func parseRecords(output string) []Commit {
	output = strings.TrimSpace(output)
	if output == "" {
		return []Commit{}
	}

	lines := strings.Split(output, "\n")
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		hash, subject, ok := strings.Cut(line, recordSeparator)
		if !ok {
			continue
		}
		commits = append(commits, Commit{
			Hash:    strings.TrimSpace(hash),
			Subject: subject,
		})
	}

	return commits
}
