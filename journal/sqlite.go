package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, feed, mode, bars, indicators, started, finished)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Feed, r.Mode, r.Bars, r.Indicators, r.Started, r.Finished,
	)
	return err
}

func (j *SQLite) RecordSummary(s ColumnSummary) error {
	_, err := j.db.Exec(`
		INSERT INTO summaries
		(run_id, indicator, line, min_period, defined, first, last, mean, stddev, min, max)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Indicator, s.Line, s.MinPeriod, s.Defined,
		s.First, s.Last, s.Mean, s.StdDev, s.Min, s.Max,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
