package progress

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestTracker(totalSteps int) (*Tracker, *bytes.Buffer, *time.Time) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	now := time.Unix(1000, 0)
	tracker := NewTracker(totalSteps, logger)
	tracker.now = func() time.Time { return now }
	tracker.startedAt = now
	return tracker, &buf, &now
}

func TestTracker_StepFormat(t *testing.T) {
	tracker, buf, now := newTestTracker(4)

	*now = now.Add(3 * time.Second)
	tracker.Step("setup complete")

	got := buf.String()
	want := "[1/4] (25%) setup complete - elapsed: 3s"
	if !strings.Contains(got, want) {
		t.Errorf("Step() logged %q, want it to contain %q", got, want)
	}
}

func TestTracker_StepCountsAndPercent(t *testing.T) {
	tracker, buf, _ := newTestTracker(2)

	tracker.Step("first")
	tracker.Step("second")

	got := buf.String()
	for _, want := range []string{"[1/2] (50%) first", "[2/2] (100%) second"} {
		if !strings.Contains(got, want) {
			t.Errorf("progress output %q missing %q", got, want)
		}
	}
}

func TestTracker_Complete(t *testing.T) {
	tracker, buf, now := newTestTracker(3)

	*now = now.Add(1500 * time.Millisecond)
	tracker.Complete()

	if !strings.Contains(buf.String(), "completed in 1.5s") {
		t.Errorf("Complete() logged %q, want total elapsed time", buf.String())
	}
}

func TestNewTracker_MinimumSteps(t *testing.T) {
	tracker := NewTracker(0, slog.Default())
	if tracker.totalSteps != 1 {
		t.Errorf("totalSteps = %d, want clamped to 1", tracker.totalSteps)
	}
}
