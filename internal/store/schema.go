package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the run index. One row per saved run; status and score
// arrive later, when the run is validated.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    scenario   TEXT NOT NULL,
    mode       TEXT NOT NULL,
    n          INTEGER NOT NULL,
    duration   REAL NOT NULL,
    dt         REAL NOT NULL,
    seed       INTEGER NOT NULL,
    samples    INTEGER NOT NULL,
    trace_hash TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'recorded',
    score      REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}
