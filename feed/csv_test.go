package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVCommaWithHeader(t *testing.T) {
	path := writeTemp(t, `Date,Open,High,Low,Close,Volume
2024-01-02,100.0,101.5,99.5,101.0,12000
2024-01-03,101.0,102.0,100.0,100.5,9000
`)
	bars, bad, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Zero(t, bad)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 101.5, bars[0].High)
	assert.Equal(t, 99.5, bars[0].Low)
	assert.Equal(t, 101.0, bars[0].Close)
	assert.Equal(t, 12000.0, bars[0].Volume)
}

func TestLoadCSVSemicolonSeparated(t *testing.T) {
	path := writeTemp(t, `2024-01-02 09:30:00;100;101;99;100.5;500
2024-01-02 09:31:00;100.5;101.5;100;101;600
`)
	bars, bad, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Zero(t, bad)
	require.Len(t, bars, 2)
	assert.Equal(t, 9, bars[0].Time.Hour())
	assert.Equal(t, 101.0, bars[1].Close)
}

func TestLoadCSVUnixSecondsWithoutVolume(t *testing.T) {
	path := writeTemp(t, "1704186600,100,101,99,100.5\n")
	bars, bad, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Zero(t, bad)
	require.Len(t, bars, 1)
	assert.Equal(t, int64(1704186600), bars[0].Time.Unix())
	assert.Zero(t, bars[0].Volume)
}

func TestLoadCSVCountsBadLines(t *testing.T) {
	path := writeTemp(t, `Date,Open,High,Low,Close,Volume
2024-01-02,100,101,99,100.5,500
not-a-date,100,101,99,100.5,500
2024-01-03,garbage,101,99,100.5,500
2024-01-04,100,101,99,100.5,500
`)
	bars, bad, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bad)
	assert.Len(t, bars, 2)
}

func TestLoadCSVShortHeaderIsSkippedNotCounted(t *testing.T) {
	path := writeTemp(t, `Date,Close
2024-01-02,100,101,99,100.5,500
2024-01-03,100.5,101.5,100,101,600
`)
	bars, bad, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Zero(t, bad)
	assert.Len(t, bars, 2)
}

func TestLoadCSVNoValidBars(t *testing.T) {
	path := writeTemp(t, "Date,Open,High,Low,Close,Volume\n")
	_, _, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
