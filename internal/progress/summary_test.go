package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Summary{
		Cloned:   2,
		Updated:  3,
		Failed:   1,
		Duration: 1500 * time.Millisecond,
		Failures: []Failure{{Name: "owner/broken", Err: errors.New("exit status 128")}},
	})

	out := buf.String()
	assert.Contains(t, out, "Backup complete: 6 items in 1.5s")
	assert.Contains(t, out, "Cloned:  2")
	assert.Contains(t, out, "Updated: 3")
	assert.Contains(t, out, "Failed:  1")
	assert.Contains(t, out, "- owner/broken: exit status 128")
}

func TestPrintSummary_NoFailures(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Summary{Cloned: 1})

	assert.NotContains(t, buf.String(), "Failed items")
}

func TestPrintSummary_FailureDuration(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Summary{
		Failed:   1,
		Failures: []Failure{{Name: "owner/slow", Err: errors.New("timed out"), Duration: 2 * time.Second}},
	})

	assert.Contains(t, buf.String(), "- owner/slow (after 2s): timed out")
}
