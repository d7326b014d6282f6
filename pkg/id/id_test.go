package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIsOrderedAndUnique(t *testing.T) {
	a := NewRun()
	b := NewRun()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestRunAtRoundTripsStartTime(t *testing.T) {
	stamp := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	runID := RunAt(stamp)

	got, err := StartTime(runID)
	require.NoError(t, err)
	assert.Equal(t, stamp, got)
}

func TestStartTimeRejectsGarbage(t *testing.T) {
	_, err := StartTime("not-a-run-id")
	assert.Error(t, err)
}
