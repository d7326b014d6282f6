// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs      *csv.Writer
	summaries *csv.Writer
	rf, sf    *os.File
}

// NewCSV writes runs.csv and summaries.csv under dir, creating it if
// needed.
func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	rf, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(filepath.Join(dir, "summaries.csv"))
	if err != nil {
		rf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	sw := csv.NewWriter(sf)

	if err := rw.Write([]string{"run_id", "feed", "mode", "bars", "indicators", "started", "finished"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "indicator", "line", "min_period", "defined", "first", "last", "mean", "stddev", "min", "max"}); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{rw, sw, rf, sf}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Feed,
		r.Mode,
		strconv.Itoa(r.Bars),
		strconv.Itoa(r.Indicators),
		r.Started.Format(time.RFC3339),
		r.Finished.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordSummary(s ColumnSummary) error {
	err := j.summaries.Write([]string{
		s.RunID,
		s.Indicator,
		s.Line,
		strconv.Itoa(s.MinPeriod),
		strconv.Itoa(s.Defined),
		f(s.First),
		f(s.Last),
		f(s.Mean),
		f(s.StdDev),
		f(s.Min),
		f(s.Max),
	})
	if err != nil {
		return err
	}

	j.summaries.Flush()
	return j.summaries.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.summaries.Flush()
	if err := j.summaries.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
