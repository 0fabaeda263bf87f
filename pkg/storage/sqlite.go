package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

// sqlitePragmas are applied to every file-backed database on open.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// sqlitePath maps the remainder of a sqlite:// URL onto a driver path. A
// host component is rejected, sqlite has no server.
func sqlitePath(rest string) (string, error) {
	if rest == "" {
		return memoryDSN, nil
	}
	if !strings.HasPrefix(rest, "/") {
		return "", errors.Join(ErrFailedToParseURL, fmt.Errorf("sqlite url cannot carry a host: %q", rest))
	}
	path := strings.TrimPrefix(rest, "/")
	if path == "" || path == memoryDSN {
		return memoryDSN, nil
	}
	return path, nil
}

func openSQLite(rest string) (*sql.DB, error) {
	path, err := sqlitePath(rest)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpen, err)
	}

	if path == memoryDSN {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	for _, pragma := range sqlitePragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errors.Join(ErrFailedToOpen, fmt.Errorf("apply pragma %q: %w", pragma, execErr))
		}
	}
	return db, nil
}
