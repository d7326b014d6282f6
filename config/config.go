package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/lineflow/engine"
)

// Config represents the complete replay configuration
type Config struct {
	Data       DataConfig      `json:"data" yaml:"data"`
	Replay     ReplayConfig    `json:"replay" yaml:"replay"`
	Log        LogConfig       `json:"log" yaml:"log"`
	Journal    JournalConfig   `json:"journal" yaml:"journal"`
	Indicators []IndicatorSpec `json:"indicators" yaml:"indicators"`
}

// DataConfig tells the loader where the bars come from
type DataConfig struct {
	Path string `json:"path" yaml:"path"`
	// Resample > 1 additionally compresses every N bars into one slow bar
	// and binds each indicator's output back onto the driving clock.
	Resample int `json:"resample,omitempty" yaml:"resample,omitempty"`
}

// ReplayConfig contains evaluation parameters
type ReplayConfig struct {
	Mode string `json:"mode" yaml:"mode"` // "next" or "once"
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // "console" or "json"
}

// JournalConfig contains result persistence parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	// Columns is rejected by Validate: the journal records run summaries,
	// never full output columns.
	Columns bool `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// IndicatorSpec describes one indicator to evaluate over the feed
type IndicatorSpec struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Kind    string  `json:"kind" yaml:"kind"`
	Period  int     `json:"period,omitempty" yaml:"period,omitempty"`
	Fast    int     `json:"fast,omitempty" yaml:"fast,omitempty"`
	Slow    int     `json:"slow,omitempty" yaml:"slow,omitempty"`
	Percent float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Data.Resample < 0 {
		return fmt.Errorf("data.resample must not be negative")
	}
	if _, err := engine.ParseMode(c.Replay.Mode); err != nil {
		return err
	}
	if c.Data.Resample > 1 && c.Replay.Mode == "once" {
		return fmt.Errorf("resampled feeds require replay.mode 'next'")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	if c.Journal.Columns {
		return fmt.Errorf("journal.columns is not supported; runs are journaled as summaries")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal.dir required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if len(c.Indicators) == 0 {
		return fmt.Errorf("at least one indicator is required")
	}
	for i, sp := range c.Indicators {
		if sp.Kind == "" {
			return fmt.Errorf("indicators[%d].kind is required", i)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path: "./bars.csv",
		},
		Replay: ReplayConfig{
			Mode: "next",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalConfig{
			Type: "csv",
			Dir:  "./runs",
		},
		Indicators: []IndicatorSpec{
			{Kind: "sma", Period: 20},
			{Kind: "ema", Period: 20},
		},
	}
}
