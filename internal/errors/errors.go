// Package errors defines the typed errors shared by the backup tool: failures
// of external git invocations and failures of hosting API calls.
package errors

import (
	"fmt"
	"strings"
)

// OperationError represents a failed git operation against one directory
type OperationError struct {
	Op     string // The operation being performed
	Dir    string // Directory the operation ran in or targeted
	Output string // Trailing stderr of the tool, trimmed
	Err    error  // The underlying error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Dir != "" {
		fmt.Fprintf(&b, " %s", e.Dir)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if line := lastLine(e.Output); line != "" {
		fmt.Fprintf(&b, " (%s)", line)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// New creates a new OperationError
func New(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// NewInDir creates an OperationError for an operation run against dir,
// keeping whatever the tool printed before failing.
func NewInDir(op, dir string, output []byte, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Dir:    dir,
		Output: strings.TrimSpace(string(output)),
		Err:    err,
	}
}

// Is implements error matching for OperationError
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}

// lastLine returns the final non-empty line of output, which is where git
// reports why it gave up.
func lastLine(output string) string {
	output = strings.TrimSpace(output)
	if i := strings.LastIndexByte(output, '\n'); i >= 0 {
		output = strings.TrimSpace(output[i+1:])
	}
	return output
}
