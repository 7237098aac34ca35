package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &OperationError{Op: "clone", Err: errors.New("repository not found")},
			expected: "clone: repository not found",
		},
		{
			name:     "without underlying error",
			err:      &OperationError{Op: "fetch"},
			expected: "fetch",
		},
		{
			name:     "with directory and output",
			err:      &OperationError{Op: "pull", Dir: "/backup/public/repo", Output: "fatal: not a git repository", Err: errors.New("exit status 128")},
			expected: "pull /backup/public/repo: exit status 128 (fatal: not a git repository)",
		},
		{
			name: "multi-line output keeps the last line",
			err: &OperationError{
				Op:     "clone",
				Dir:    "/backup/public/gone",
				Output: "Cloning into '/backup/public/gone'...\nremote: Repository not found.\nfatal: repository 'https://github.com/o/gone.git/' not found",
				Err:    errors.New("exit status 128"),
			},
			expected: "clone /backup/public/gone: exit status 128 (fatal: repository 'https://github.com/o/gone.git/' not found)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	opErr := &OperationError{
		Op:  "fetch",
		Err: underlying,
	}

	assert.Equal(t, underlying, opErr.Unwrap())
	assert.ErrorIs(t, opErr, underlying)
	assert.ErrorIs(t, fmt.Errorf("sync failed: %w", opErr), underlying)
}

func TestNew(t *testing.T) {
	err := errors.New("network error")

	opErr := New("pull", err)

	assert.Equal(t, "pull", opErr.Op)
	assert.Equal(t, err, opErr.Err)
}

func TestNewInDir(t *testing.T) {
	opErr := NewInDir("update-server-info", "/backup/repo.git", []byte("  some output\n"), errors.New("exit status 1"))

	assert.Equal(t, "/backup/repo.git", opErr.Dir)
	assert.Equal(t, "some output", opErr.Output)
}

func TestOperationError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err1     *OperationError
		err2     error
		expected bool
	}{
		{
			name:     "matching operations",
			err1:     &OperationError{Op: "clone", Err: errors.New("error1")},
			err2:     &OperationError{Op: "clone", Err: errors.New("error2")},
			expected: true,
		},
		{
			name:     "different operations",
			err1:     &OperationError{Op: "clone", Err: errors.New("error")},
			err2:     &OperationError{Op: "pull", Err: errors.New("error")},
			expected: false,
		},
		{
			name:     "different error types",
			err1:     &OperationError{Op: "clone", Err: errors.New("error")},
			err2:     errors.New("not an operation error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err1.Is(tt.err2))
		})
	}
}
