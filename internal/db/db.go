package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database named by dsn and runs migrations.
//
// dsn may be a plain path, a "sqlite://" or "file:" URL, or ":memory:".
// Foreign keys and a busy timeout are enabled on every pooled connection;
// file databases additionally use WAL. The pool is capped at a single
// connection so writers never contend for the database lock.
func OpenDB(dsn string) (*sql.DB, error) {
	path, memory := resolvePath(dsn)
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", driverDSN(path, memory))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if !memory {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// resolvePath strips URL schemes and query strings from dsn.
func resolvePath(dsn string) (path string, memory bool) {
	s := strings.TrimSpace(dsn)
	s = strings.TrimPrefix(s, "sqlite://")
	s = strings.TrimPrefix(s, "sqlite:")
	s = strings.TrimPrefix(s, "file:")
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == ":memory:" {
		return ":memory:", true
	}
	return s, false
}

func driverDSN(path string, memory bool) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	if memory {
		return "file::memory:?" + q.Encode()
	}
	return "file:" + path + "?" + q.Encode()
}
