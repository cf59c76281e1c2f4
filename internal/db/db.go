package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// LedgerDir is the directory under the developer-tools root that holds edgegen state.
const LedgerDir = ".edgegen"

// LedgerFile is the ledger database file name.
const LedgerFile = "ledger.db"

// LedgerPath returns the path to the ledger database for a root.
func LedgerPath(root string) string {
	return filepath.Join(root, LedgerDir, LedgerFile)
}

// Open opens the ledger database at path, creating it and its schema if needed.
func Open(path string) (*sql.DB, error) {
	// Ensure the ledger directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
