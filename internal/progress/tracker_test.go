package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTracker_Start(t *testing.T) {
	tracker := &DefaultTracker{}
	op := tracker.Start("owner/repo")

	require.NotNil(t, op)
	assert.Equal(t, "owner/repo", op.Name)
	assert.False(t, op.StartTime.IsZero())
	assert.Zero(t, op.Duration)
}

func TestDefaultTracker_Complete(t *testing.T) {
	tracker := &DefaultTracker{}
	op := tracker.Start("owner/repo")
	tracker.Message("Cloning %s", "url")
	tracker.Complete()

	assert.Positive(t, op.Duration)
}

func TestDefaultTracker_Error(t *testing.T) {
	tracker := &DefaultTracker{}
	op := tracker.Start("owner/repo")
	tracker.Error(errors.New("test error"))

	assert.Positive(t, op.Duration)
}

func TestDefaultTracker_EdgeCases(t *testing.T) {
	tracker := &DefaultTracker{}

	tracker.Message("ignored")
	tracker.Complete()
	tracker.Error(errors.New("test error"))

	assert.Nil(t, tracker.CurrentOperation)
}

func TestConsoleTracker_Output(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewConsoleTracker(&buf)

	op := tracker.Start("owner/repo")
	tracker.Message("Cloning %s to %s", "https://github.com/owner/repo.git", "backup/public/repo")
	tracker.Complete()

	assert.Equal(t, "Processing owner/repo\nCloning https://github.com/owner/repo.git to backup/public/repo\n", buf.String())
	assert.Positive(t, op.Duration)
}
