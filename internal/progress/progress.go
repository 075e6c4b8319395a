// Package progress provides step-count and elapsed-time reporting for
// long-running pipeline runs. Trackers are purely observational and
// never influence control flow.
package progress

import (
	"fmt"
	"log/slog"
	"time"
)

// Tracker reports progress through a fixed number of steps as
// human-readable log lines.
type Tracker struct {
	totalSteps  int
	currentStep int
	startedAt   time.Time
	logger      *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewTracker creates a Tracker for a run of totalSteps steps, starting
// the elapsed-time clock immediately.
func NewTracker(totalSteps int, logger *slog.Logger) *Tracker {
	if totalSteps < 1 {
		totalSteps = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	tracker := &Tracker{
		totalSteps: totalSteps,
		logger:     logger,
		now:        time.Now,
	}
	tracker.startedAt = tracker.now()
	return tracker
}

// Step increments the current step and logs a progress line of the form
// "[current/total] (percent%) label - elapsed: Ns".
func (t *Tracker) Step(label string) {
	t.currentStep++
	percent := t.currentStep * 100 / t.totalSteps
	elapsed := int(t.now().Sub(t.startedAt).Seconds())

	t.logger.Info(fmt.Sprintf("[%d/%d] (%d%%) %s - elapsed: %ds",
		t.currentStep, t.totalSteps, percent, label, elapsed))
}

// Complete logs the total elapsed time for the run.
func (t *Tracker) Complete() {
	elapsed := t.now().Sub(t.startedAt)
	t.logger.Info(fmt.Sprintf("completed in %s", elapsed.Round(time.Millisecond)))
}
