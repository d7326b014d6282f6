package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/lineflow/config"
	"github.com/rustyeddy/lineflow/engine"
	"github.com/rustyeddy/lineflow/feed"
	"github.com/rustyeddy/lineflow/indicators"
	"github.com/rustyeddy/lineflow/journal"
	"github.com/rustyeddy/lineflow/pkg/id"
	"github.com/rustyeddy/lineflow/pkg/logger"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a bar file through a set of indicators",
	Long: `Replay loads a CSV bar file and evaluates the configured indicators
over it, either bar by bar (mode next) or in one batch pass (mode once).
Results are journaled per the configuration.

Examples:
  lineflow replay -c replay.yaml
  lineflow replay -d data/eurusd.csv -m once`,
	RunE: runReplay,
}

var (
	replayConfigPath string
	replayDataPath   string
	replayMode       string
	replayResample   int
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "c", "", "replay configuration file (YAML or JSON)")
	replayCmd.Flags().StringVarP(&replayDataPath, "data", "d", "", "CSV bar file (overrides config)")
	replayCmd.Flags().StringVarP(&replayMode, "mode", "m", "", "evaluation mode: next or once (overrides config)")
	replayCmd.Flags().IntVarP(&replayResample, "resample", "r", 0, "compress every N bars into one slow bar (overrides config)")
}

func loadReplayConfig() (*config.Config, error) {
	var cfg *config.Config
	if replayConfigPath != "" {
		c, err := config.LoadFromFile(replayConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	if replayDataPath != "" {
		cfg.Data.Path = replayDataPath
	}
	if replayMode != "" {
		cfg.Replay.Mode = replayMode
	}
	if replayResample != 0 {
		cfg.Data.Resample = replayResample
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadReplayConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	bars, bad, err := feed.LoadCSV(cfg.Data.Path)
	if err != nil {
		return err
	}
	if bad > 0 {
		log.Warn().Int("lines", bad).Str("file", cfg.Data.Path).Msg("skipped unparseable lines")
	}

	src := feed.NewSeries(filepath.Base(cfg.Data.Path))
	src.Load(bars)

	mode, err := engine.ParseMode(cfg.Replay.Mode)
	if err != nil {
		return err
	}

	runner := &engine.Runner{Feed: src, Mode: mode, Log: log}
	indSet, err := wireIndicators(runner, src, cfg)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", cfg.Data.Path).
		Int("bars", len(bars)).
		Int("indicators", len(indSet)).
		Str("mode", mode.String()).
		Msg("replay starting")

	res, err := runner.Run()
	if err != nil {
		return err
	}

	return journalRun(cfg, res, src.Name(), mode, indSet, log)
}

// wireIndicators builds the configured indicators over the feed. With
// resampling enabled each indicator runs on the slow series and its output
// is bound back onto the driving clock, so downstream consumers see one
// sample per fast bar.
func wireIndicators(runner *engine.Runner, src *feed.Series, cfg *config.Config) ([]engine.Evaluator, error) {
	var over engine.Source = src
	if cfg.Data.Resample > 1 {
		rs, err := feed.NewResampler(fmt.Sprintf("%s/%d", src.Name(), cfg.Data.Resample), src, cfg.Data.Resample)
		if err != nil {
			return nil, err
		}
		runner.Add(rs)
		over = rs.Out()
	}

	var built []engine.Evaluator
	for _, sp := range cfg.Indicators {
		ind, err := indicators.FromSpec(over, indicators.Spec{
			Kind:    sp.Kind,
			Period:  sp.Period,
			Fast:    sp.Fast,
			Slow:    sp.Slow,
			Percent: sp.Percent,
		})
		if err != nil {
			return nil, err
		}
		runner.Add(ind)
		built = append(built, ind)

		if cfg.Data.Resample > 1 {
			bound, err := engine.NewBinder(ind.Name()+"@clock", ind)
			if err != nil {
				return nil, err
			}
			bound.SetCompression(cfg.Data.Resample)
			runner.Add(bound)
		}
	}
	return built, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.Dir)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
	return nil, nil
}

func journalRun(cfg *config.Config, res engine.Result, feedName string, mode engine.Mode, evals []engine.Evaluator, log *zerolog.Logger) error {
	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	runID := id.NewRun()
	if err := j.RecordRun(journal.RunRecord{
		RunID:      runID,
		Feed:       feedName,
		Mode:       mode.String(),
		Bars:       res.Bars,
		Indicators: len(evals),
		Started:    res.Start,
		Finished:   res.Finish,
	}); err != nil {
		return err
	}

	for _, ev := range evals {
		for _, cs := range journal.Summarize(runID, ev) {
			if err := j.RecordSummary(cs); err != nil {
				return err
			}
		}
	}

	log.Info().Str("run_id", runID).Str("journal", cfg.Journal.Type).Msg("run journaled")
	return nil
}
