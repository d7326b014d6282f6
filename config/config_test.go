package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "next", cfg.Replay.Mode)
	assert.Len(t, cfg.Indicators, 2)
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: ./bars.csv
  resample: 5
replay:
  mode: next
journal:
  type: sqlite
  db_path: ./runs.db
indicators:
  - kind: sma
    period: 20
  - kind: kama
    period: 10
    fast: 2
    slow: 30
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Data.Resample)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	require.Len(t, cfg.Indicators, 2)
	assert.Equal(t, "kama", cfg.Indicators[1].Kind)
	assert.Equal(t, 30, cfg.Indicators[1].Slow)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "data": {"path": "./bars.csv"},
  "replay": {"mode": "once"},
  "indicators": [{"kind": "ema", "period": 12}]
}`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "once", cfg.Replay.Mode)
}

func TestLoadFromFileRejectsColumnPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: ./bars.csv
journal:
  type: csv
  dir: ./runs
  columns: true
indicators:
  - kind: sma
    period: 20
`), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal.columns")
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing data path", func(c *Config) { c.Data.Path = "" }},
		{"bad mode", func(c *Config) { c.Replay.Mode = "sideways" }},
		{"resample in once mode", func(c *Config) { c.Data.Resample = 5; c.Replay.Mode = "once" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"csv journal without dir", func(c *Config) { c.Journal.Type = "csv"; c.Journal.Dir = "" }},
		{"sqlite journal without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "kafka" }},
		{"column persistence requested", func(c *Config) { c.Journal.Columns = true }},
		{"no indicators", func(c *Config) { c.Indicators = nil }},
		{"indicator without kind", func(c *Config) { c.Indicators = []IndicatorSpec{{Period: 5}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Data.Resample = 3
	require.NoError(t, cfg.SaveToFile(path))

	back, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.Resample, back.Data.Resample)
	assert.Equal(t, cfg.Journal.Type, back.Journal.Type)
}
