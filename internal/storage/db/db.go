package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB is the installed-mod store, a single SQLite file in the data
// directory. The embedded *sql.DB is exported for direct queries.
type DB struct {
	*sql.DB
}

// New opens the store at path, creating it if missing, and brings the
// schema up to date.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening mod store: %w", err)
	}

	// WAL plus a busy timeout: the TUI and a concurrent CLI invocation
	// share this file.
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("configuring mod store: %w", err)
	}

	store := &DB{DB: sqlDB}

	if err := store.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating mod store: %w", err)
	}

	return store, nil
}
