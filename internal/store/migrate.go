package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrate applies the workspace schema and reports whether FTS5 mirrors
// were created, using the same probe-a-dummy-virtual-table technique as
// internal/db/migrate.go: attempt to create it, and only fall back to a
// plain table (with a LIKE-queryable index) if the sqlite3 build lacks
// the fts5 module.
func migrate(db *sql.DB) (bool, error) {
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return false, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		id TEXT PRIMARY KEY,
		root_path TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		last_indexed_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		files_changed INTEGER DEFAULT 0,
		symbols_written INTEGER DEFAULT 0,
		stats_json TEXT,
		FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_runs_workspace_started ON runs (workspace_id, started_at DESC);

	CREATE TABLE IF NOT EXISTS files (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		path TEXT NOT NULL,
		language TEXT,
		size INTEGER,
		mod_time INTEGER,
		hash TEXT,
		symbol_count INTEGER DEFAULT 0,
		FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_files_workspace_path ON files (workspace_id, path);

	CREATE TABLE IF NOT EXISTS symbols (
		id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		file_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		language TEXT,
		start_byte INTEGER,
		end_byte INTEGER,
		start_line INTEGER,
		start_col INTEGER,
		end_line INTEGER,
		end_col INTEGER,
		signature TEXT,
		doc_comment TEXT,
		parent_symbol_id TEXT,
		scope TEXT,
		visibility TEXT,
		semantic_group TEXT,
		confidence REAL,
		hash TEXT,
		FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_symbols_workspace_name ON symbols (workspace_id, name);
	CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols (file_id);
	CREATE INDEX IF NOT EXISTS idx_symbols_parent ON symbols (parent_symbol_id);

	CREATE TABLE IF NOT EXISTS identifiers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workspace_id TEXT NOT NULL,
		file_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		start_byte INTEGER,
		end_byte INTEGER,
		line INTEGER,
		col INTEGER,
		containing_symbol_id TEXT,
		FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_identifiers_workspace_name ON identifiers (workspace_id, name);
	CREATE INDEX IF NOT EXISTS idx_identifiers_file ON identifiers (file_id);

	CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workspace_id TEXT NOT NULL,
		from_symbol_id TEXT NOT NULL,
		to_symbol_id TEXT,
		to_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		file_id TEXT NOT NULL,
		line INTEGER,
		confidence REAL,
		FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships (from_symbol_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_to_name ON relationships (workspace_id, to_name);
	CREATE INDEX IF NOT EXISTS idx_relationships_unresolved ON relationships (workspace_id, to_symbol_id) WHERE to_symbol_id IS NULL;

	CREATE TABLE IF NOT EXISTS embeddings (
		symbol_id TEXT PRIMARY KEY,
		workspace_id TEXT NOT NULL,
		model TEXT NOT NULL,
		dim INTEGER NOT NULL,
		vector BLOB NOT NULL,
		FOREIGN KEY (symbol_id) REFERENCES symbols(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_embeddings_workspace ON embeddings (workspace_id);

	CREATE TABLE IF NOT EXISTS diagnostics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workspace_id TEXT NOT NULL,
		run_id TEXT,
		file TEXT,
		severity TEXT NOT NULL,
		message TEXT,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_diagnostics_workspace ON diagnostics (workspace_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return false, fmt.Errorf("create schema: %w", err)
	}

	hasFTS5, err := migrateFTS(db)
	if err != nil {
		return false, err
	}
	return hasFTS5, nil
}

func migrateFTS(db *sql.DB) (bool, error) {
	_, err := db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS _dummy_fts_probe USING fts5(x);")
	if err == nil {
		_, _ = db.Exec("DROP TABLE IF EXISTS _dummy_fts_probe;")
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS symbols_fts USING fts5(
			symbol_id UNINDEXED, file_id UNINDEXED, name, signature, doc_comment
		);
		CREATE VIRTUAL TABLE IF NOT EXISTS files_fts USING fts5(
			file_id UNINDEXED, path
		);
		`
		if _, err := db.Exec(ftsSchema); err != nil {
			return false, fmt.Errorf("create fts5 tables: %w", err)
		}
		return true, nil
	}
	if strings.Contains(err.Error(), "no such module: fts5") {
		plainSchema := `
		CREATE TABLE IF NOT EXISTS symbols_fts (
			symbol_id TEXT PRIMARY KEY,
			file_id TEXT,
			name TEXT,
			signature TEXT,
			doc_comment TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_symbols_fts_file ON symbols_fts (file_id);
		CREATE INDEX IF NOT EXISTS idx_symbols_fts_name ON symbols_fts (name);

		CREATE TABLE IF NOT EXISTS files_fts (
			file_id TEXT PRIMARY KEY,
			path TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_files_fts_path ON files_fts (path);
		`
		if _, err := db.Exec(plainSchema); err != nil {
			return false, fmt.Errorf("create fallback search tables: %w", err)
		}
		return false, nil
	}
	return false, fmt.Errorf("probe fts5 support: %w", err)
}
