package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run record by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, feed, mode, bars, indicators, started, finished
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Feed,
		&rec.Mode,
		&rec.Bars,
		&rec.Indicators,
		&rec.Started,
		&rec.Finished,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns every recorded run, newest first. Run IDs are ULIDs, so
// ordering by ID orders by start time.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, feed, mode, bars, indicators, started, finished
		FROM runs
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Feed,
			&rec.Mode,
			&rec.Bars,
			&rec.Indicators,
			&rec.Started,
			&rec.Finished,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSummaries returns every column summary for a run, in indicator then
// line order.
func (j *SQLite) ListSummaries(runID string) ([]ColumnSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id, indicator, line, min_period, defined, first, last, mean, stddev, min, max
		FROM summaries
		WHERE run_id = ?
		ORDER BY indicator ASC, line ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ColumnSummary
	for rows.Next() {
		var cs ColumnSummary
		if err := rows.Scan(
			&cs.RunID,
			&cs.Indicator,
			&cs.Line,
			&cs.MinPeriod,
			&cs.Defined,
			&cs.First,
			&cs.Last,
			&cs.Mean,
			&cs.StdDev,
			&cs.Min,
			&cs.Max,
		); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
