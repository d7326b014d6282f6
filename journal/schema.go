// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	feed TEXT NOT NULL,
	mode TEXT NOT NULL,
	bars INTEGER NOT NULL,
	indicators INTEGER NOT NULL,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL,
	indicator TEXT NOT NULL,
	line TEXT NOT NULL,
	min_period INTEGER NOT NULL,
	defined INTEGER NOT NULL,
	first REAL NOT NULL,
	last REAL NOT NULL,
	mean REAL NOT NULL,
	stddev REAL NOT NULL,
	min REAL NOT NULL,
	max REAL NOT NULL,
	PRIMARY KEY (run_id, indicator, line)
);

CREATE INDEX IF NOT EXISTS idx_summaries_run ON summaries(run_id);
`
