// Package store is the embedded SQLite layer behind a workspace index:
// one database per workspace holding symbols, identifiers, relationships,
// embeddings, and run/diagnostic bookkeeping, with FTS5 mirrors for
// symbol/file search when the runtime's sqlite3 build carries the FTS5
// module (internal/db/migrate.go's dummy-table probe, generalized).
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oxhq/julie/internal/errs"
)

// Store wraps a single workspace's SQLite connection plus the detected
// FTS5 availability, so callers never need to branch on it themselves.
type Store struct {
	db      *sql.DB
	path    string
	hasFTS5 bool
}

func execWithRetry(db execer, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for range 5 {
		res, err = db.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("database is locked after retries: %w", err)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Open creates (if needed) and opens the workspace database at dbPath,
// applying PRAGMAs, schema migrations, and an integrity check.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.New(errs.KindIO, "store.Open", err)
		}
	}
	dsn := fmt.Sprintf(
		"%s?_busy_timeout=5000&_foreign_keys=ON&_journal_mode=WAL&_synchronous=NORMAL&_temp_store=MEMORY",
		dbPath,
	)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "store.Open", err)
	}

	hasFTS5, err := migrate(db)
	if err != nil {
		db.Close()
		return nil, errs.New(errs.KindSchema, "store.Open", err)
	}

	if err := quickCheck(db); err != nil {
		db.Close()
		return nil, errs.New(errs.KindStorage, "store.Open", err)
	}

	return &Store{db: db, path: dbPath, hasFTS5: hasFTS5}, nil
}

func quickCheck(db *sql.DB) error {
	var result string
	if err := db.QueryRow("PRAGMA quick_check;").Scan(&result); err != nil {
		return fmt.Errorf("quick_check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("quick_check failed: %s", result)
	}
	return nil
}

// HasFTS5 reports whether this store's sqlite3 build supports FTS5.
// FTSSearchSymbols and FTSSearchFiles branch on the same flag to choose
// between MATCH and LIKE-based search.
func (s *Store) HasFTS5() bool { return s.hasFTS5 }

func (s *Store) Close() error {
	if err := quickCheck(s.db); err != nil {
		// surfaced by the caller's logger, not fatal on close.
		_ = err
	}
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need direct row
// access beyond this package's write/query surface.
func (s *Store) DB() *sql.DB { return s.db }
