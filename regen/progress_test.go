package regen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Add(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)
	tracker.Start()

	tracker.Add(25, 0)
	tracker.Add(25, 2)
	tracker.Add(80, 1)

	assert.Equal(t, 100, tracker.Done(), "done is capped at total")
	assert.Equal(t, 3, tracker.Failed())

	output := buf.String()
	assert.Contains(t, output, "25/100")
	assert.Contains(t, output, "100/100 (100.0%), 3 failed")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 50)
	tracker.Start()

	tracker.Add(10, 0)
	tracker.Add(10, 0)
	assert.Empty(t, buf.String(), "should not report before the interval")

	tracker.Add(30, 0)
	assert.Equal(t, 1, strings.Count(buf.String(), "Regenerated:"))
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 10)
	tracker.Start()
	tracker.Add(4, 1)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "4/4 (100.0%), 1 failed")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Add(5, 0)
	tracker.Finish()

	assert.Zero(t, tracker.Done())
	assert.Zero(t, tracker.Elapsed())
	assert.Empty(t, buf.String())
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 0)
	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0 (0.0%)")
}
