// Package chain implements the fix-chain traversal: starting from a commit
// subject, it discovers commits whose Fixes: trailer references the subject,
// then optionally follows commits that in turn fix those, to any depth.
package chain

import (
	"context"
	"regexp"

	"fixtrace/internal/gitlog"
	"fixtrace/internal/logging"
)

// hashPrefixLen is how many identifier characters a chain query matches on.
// Long enough to be unique in practice; a collision is an acceptable
// false positive, not an error.
const hashPrefixLen = 12

// Discovery is a single fix-chain hit, emitted as soon as it is found.
type Discovery struct {
	// Subject is the originating search subject; set only for primary
	// matches (depth 1)
	Subject string
	// Commit is the fixing commit
	Commit gitlog.Commit
	// Depth is 1 for a primary match, increasing along the chain
	Depth int
	// Parent is the hash this commit fixes; empty for primary matches
	Parent string
}

// Querier is the slice of the history adapter the tracer needs
type Querier interface {
	Query(ctx context.Context, pattern string) ([]gitlog.Commit, error)
}

// Sink receives discoveries in real time
type Sink interface {
	Emit(d Discovery)
}

// Tracer walks fix chains through a Querier, deduplicating against a
// shared Visited set and emitting each discovery exactly once.
//
// Recursion runs synchronously on the caller's goroutine; correctness
// does not depend on where the work is scheduled, only on the visited
// set's atomicity.
type Tracer struct {
	querier   Querier
	visited   *Visited
	sink      Sink
	recursive bool
	logger    *logging.Logger
}

// NewTracer creates a tracer sharing the given visited set
func NewTracer(querier Querier, visited *Visited, sink Sink, recursive bool, logger *logging.Logger) *Tracer {
	return &Tracer{
		querier:   querier,
		visited:   visited,
		sink:      sink,
		recursive: recursive,
		logger:    logger,
	}
}

// subjectPattern matches Fixes: trailers containing the literal subject.
// The subject is quoted so regex metacharacters in commit titles match
// literally.
func subjectPattern(subject string) string {
	return `^Fixes:.*` + regexp.QuoteMeta(subject) + `.*`
}

// chainPattern matches Fixes: trailers that start with the hash's prefix
func chainPattern(hash string) string {
	prefix := hash
	if len(prefix) > hashPrefixLen {
		prefix = prefix[:hashPrefixLen]
	}
	return `^Fixes:\s*` + prefix
}

// Trace runs one top-level traversal for subject: primary matches first,
// then (when recursion is enabled) the transitive chain below each.
// A query failure abandons the remainder of this traversal; commits
// already emitted stay emitted.
func (t *Tracer) Trace(ctx context.Context, subject string) error {
	t.logger.Debug("Searching subject", map[string]interface{}{
		"subject": subject,
	})

	commits, err := t.querier.Query(ctx, subjectPattern(subject))
	if err != nil {
		return err
	}

	for _, commit := range commits {
		if !t.visited.TestAndAdd(commit.Hash) {
			continue
		}
		t.sink.Emit(Discovery{
			Subject: subject,
			Commit:  commit,
			Depth:   1,
		})
		if t.recursive {
			if err := t.followChain(ctx, commit.Hash, 2); err != nil {
				return err
			}
		}
	}

	return nil
}

// followChain recursively searches for commits that fix hash itself.
// Cycles terminate solely through the visited set: a hash claimed once
// is never expanded again, whatever path re-reaches it.
func (t *Tracer) followChain(ctx context.Context, hash string, depth int) error {
	commits, err := t.querier.Query(ctx, chainPattern(hash))
	if err != nil {
		return err
	}

	for _, commit := range commits {
		if !t.visited.TestAndAdd(commit.Hash) {
			continue
		}
		t.sink.Emit(Discovery{
			Commit: commit,
			Depth:  depth,
			Parent: hash,
		})
		if t.recursive {
			if err := t.followChain(ctx, commit.Hash, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}
