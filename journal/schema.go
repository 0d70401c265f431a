// journal/schema.go
package journal

// Decimal columns are TEXT so values round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS legs (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	seq INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	price TEXT NOT NULL,
	contracts TEXT NOT NULL,
	fee TEXT NOT NULL,
	point_value TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_legs_symbol ON legs(symbol);
`
