package progress

import (
	"fmt"
	"io"
	"time"
)

// Tracker interface defines methods for reporting the progress of one item
type Tracker interface {
	Start(name string) *Operation
	Message(format string, args ...interface{})
	Complete()
	Error(err error)
}

// Operation represents a tracked item. Duration is set once the operation
// completes or fails.
type Operation struct {
	Name      string
	StartTime time.Time
	Duration  time.Duration
}

// DefaultTracker times operations without printing anything. It backs quiet
// (cron) mode.
type DefaultTracker struct {
	CurrentOperation *Operation
}

// Start begins tracking a new operation
func (t *DefaultTracker) Start(name string) *Operation {
	t.CurrentOperation = &Operation{
		Name:      name,
		StartTime: time.Now(),
	}
	return t.CurrentOperation
}

// Message is a no-op for the silent tracker
func (t *DefaultTracker) Message(string, ...interface{}) {}

// Complete marks the operation as completed
func (t *DefaultTracker) Complete() {
	t.CurrentOperation.finish()
}

// Error marks the operation as failed. The error itself is reported by the
// caller.
func (t *DefaultTracker) Error(error) {
	t.CurrentOperation.finish()
}

// ConsoleTracker implements Tracker for console output
type ConsoleTracker struct {
	DefaultTracker
	w io.Writer
}

// NewConsoleTracker creates a tracker that prints progress lines to w
func NewConsoleTracker(w io.Writer) *ConsoleTracker {
	return &ConsoleTracker{w: w}
}

// Start prints the item header and begins tracking it
func (t *ConsoleTracker) Start(name string) *Operation {
	op := t.DefaultTracker.Start(name)
	fmt.Fprintf(t.w, "Processing %s\n", name)
	return op
}

// Message prints a progress line
func (t *ConsoleTracker) Message(format string, args ...interface{}) {
	fmt.Fprintf(t.w, format+"\n", args...)
}

func (op *Operation) finish() {
	if op == nil {
		return
	}
	op.Duration = time.Since(op.StartTime)
	if op.Duration <= 0 {
		// coarse clocks can report zero for very fast operations
		op.Duration = time.Nanosecond
	}
}
