package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the version recorded for the schema below.
const SchemaVersion = 1

// SchemaSQL is the complete ledger schema.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it via
// GetSchemaSQL() instead of declaring their own tables.
const SchemaSQL = `
-- Customize runs
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	root TEXT NOT NULL,
	started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at DATETIME,
	status TEXT NOT NULL CHECK(status IN ('running', 'success', 'failed')) DEFAULT 'running',
	entity_count INTEGER NOT NULL DEFAULT 0,
	error TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Files written by a run
CREATE TABLE IF NOT EXISTS outputs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	entity_key TEXT NOT NULL,
	path TEXT NOT NULL,
	digest TEXT NOT NULL,
	bytes INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('created', 'updated', 'unchanged')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_outputs_run ON outputs(run_id);
CREATE INDEX IF NOT EXISTS idx_outputs_entity ON outputs(entity_key);
`

// InitSchema creates the database schema and records its version.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if currentVersion > SchemaVersion {
		return fmt.Errorf("ledger schema version %d is newer than supported version %d", currentVersion, SchemaVersion)
	}
	if currentVersion == SchemaVersion {
		return nil
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
