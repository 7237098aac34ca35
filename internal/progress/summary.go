package progress

import (
	"fmt"
	"io"
	"time"
)

// Failure describes one item that could not be backed up.
type Failure struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Summary is the end-of-run tally.
type Summary struct {
	Cloned   int
	Updated  int
	Failed   int
	Duration time.Duration
	Failures []Failure
}

// Total returns the number of items processed.
func (s Summary) Total() int {
	return s.Cloned + s.Updated + s.Failed
}

// PrintSummary writes a human-readable summary of a run to w.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Backup complete: %d items in %s\n", s.Total(), s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  Cloned:  %d\n", s.Cloned)
	fmt.Fprintf(w, "  Updated: %d\n", s.Updated)
	fmt.Fprintf(w, "  Failed:  %d\n", s.Failed)

	if len(s.Failures) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFailed items:")
	for _, f := range s.Failures {
		msg := "unknown error"
		if f.Err != nil {
			msg = f.Err.Error()
		}
		if f.Duration > 0 {
			fmt.Fprintf(w, "  - %s (after %s): %s\n", f.Name, f.Duration.Round(time.Millisecond), msg)
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", f.Name, msg)
	}
}
