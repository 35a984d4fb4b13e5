// Package hunt drives the run: one traversal unit per input subject,
// scheduled on a bounded worker pool.
package hunt

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fixtrace/internal/logging"
)

// Tracer runs one top-level traversal for a subject
type Tracer interface {
	Trace(ctx context.Context, subject string) error
}

// Warning records a traversal unit that failed, tagged with its subject.
// Warnings never abort the run or cancel sibling units.
type Warning struct {
	Subject string
	Err     error
}

// Summary describes one completed run
type Summary struct {
	Subjects int
	Warnings []Warning
}

// Runner schedules traversal units on at most workers goroutines
type Runner struct {
	tracer  Tracer
	workers int
	logger  *logging.Logger
}

// NewRunner creates a runner; workers below 1 are raised to 1
func NewRunner(tracer Tracer, workers int, logger *logging.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		tracer:  tracer,
		workers: workers,
		logger:  logger,
	}
}

// Run submits one traversal per subject and waits for all of them.
// A failing unit is recorded as a warning and logged with its subject
// and unit ID; the other units keep going.
func (r *Runner) Run(ctx context.Context, subjectList []string) Summary {
	r.logger.Debug("Starting hunt", map[string]interface{}{
		"subjects": len(subjectList),
		"workers":  r.workers,
	})

	var (
		mu       sync.Mutex
		warnings []Warning
	)

	var g errgroup.Group
	g.SetLimit(r.workers)

	for _, subject := range subjectList {
		subject := subject
		g.Go(func() error {
			unitID := uuid.New().String()

			r.logger.Debug("Traversal unit started", map[string]interface{}{
				"unit":    unitID,
				"subject": subject,
			})

			if err := r.tracer.Trace(ctx, subject); err != nil {
				r.logger.Warn("Traversal unit failed", map[string]interface{}{
					"unit":    unitID,
					"subject": subject,
					"error":   err.Error(),
				})
				mu.Lock()
				warnings = append(warnings, Warning{Subject: subject, Err: err})
				mu.Unlock()
			}

			// Unit errors are warnings; never fail the group, so
			// sibling units are never cancelled.
			return nil
		})
	}

	_ = g.Wait()

	r.logger.Debug("Hunt finished", map[string]interface{}{
		"subjects": len(subjectList),
		"warnings": len(warnings),
	})

	return Summary{
		Subjects: len(subjectList),
		Warnings: warnings,
	}
}
