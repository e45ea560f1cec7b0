package store

import "github.com/oxhq/julie/internal/errs"

// DeleteFileCascade removes a file and (via ON DELETE CASCADE) every
// symbol, identifier, relationship, and embedding rooted in it. Its caller
// is Indexer.Reconcile, for paths missing from a live snapshot; the
// watcher does not call it (a removed path is only dropped from the
// watcher's pending batch).
func (s *Store) DeleteFileCascade(workspaceID, path string) error {
	if _, err := s.db.Exec(`DELETE FROM symbols_fts WHERE file_id IN (
		SELECT id FROM files WHERE workspace_id = ? AND path = ?
	)`, workspaceID, path); err != nil {
		return errs.New(errs.KindStorage, "Store.DeleteFileCascade(fts)", err)
	}
	if _, err := s.db.Exec(`DELETE FROM files_fts WHERE file_id IN (
		SELECT id FROM files WHERE workspace_id = ? AND path = ?
	)`, workspaceID, path); err != nil {
		return errs.New(errs.KindStorage, "Store.DeleteFileCascade(fts)", err)
	}
	if _, err := s.db.Exec(`DELETE FROM files WHERE workspace_id = ? AND path = ?`, workspaceID, path); err != nil {
		return errs.New(errs.KindStorage, "Store.DeleteFileCascade", err)
	}
	return nil
}

// FindOrphanedFiles returns the paths of files present in the DB but
// absent from livePaths, so Indexer.Reconcile can cascade-delete them.
func (s *Store) FindOrphanedFiles(workspaceID string, livePaths map[string]bool) ([]string, error) {
	rows, err := s.db.Query(`SELECT id, path FROM files WHERE workspace_id = ?`, workspaceID)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.FindOrphanedFiles", err)
	}
	defer rows.Close()

	var orphans []string
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, errs.New(errs.KindStorage, "Store.FindOrphanedFiles", err)
		}
		if !livePaths[path] {
			orphans = append(orphans, path)
		}
	}
	return orphans, rows.Err()
}

// RebuildFTSIndexes repopulates the search mirrors from their source
// tables -- the indexer's contract is exactly one rebuild per batch when
// orphans were found, not a rebuild per file.
func (s *Store) RebuildFTSIndexes(workspaceID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbols_fts WHERE symbol_id IN (
		SELECT sy.id FROM symbols sy WHERE sy.workspace_id = ?
	)`, workspaceID); err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO symbols_fts (symbol_id, file_id, name, signature, doc_comment)
		SELECT id, file_id, name, signature, doc_comment FROM symbols WHERE workspace_id = ?
	`, workspaceID); err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}

	if _, err := tx.Exec(`DELETE FROM files_fts WHERE file_id IN (
		SELECT id FROM files WHERE workspace_id = ?
	)`, workspaceID); err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO files_fts (file_id, path) SELECT id, path FROM files WHERE workspace_id = ?
	`, workspaceID); err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}

	if err := tx.Commit(); err != nil {
		return errs.New(errs.KindStorage, "Store.RebuildFTSIndexes", err)
	}
	return nil
}

// WorkspaceStats summarizes index size for the maintenance/status surface
// (SPEC_FULL.md 4.E expansion).
type WorkspaceStats struct {
	Files         int64
	Symbols       int64
	Identifiers   int64
	Relationships int64
	Embeddings    int64
}

func (s *Store) WorkspaceStats(workspaceID string) (WorkspaceStats, error) {
	var st WorkspaceStats
	queries := []struct {
		table string
		dest  *int64
	}{
		{"files", &st.Files},
		{"symbols", &st.Symbols},
		{"identifiers", &st.Identifiers},
		{"relationships", &st.Relationships},
		{"embeddings", &st.Embeddings},
	}
	for _, q := range queries {
		err := s.db.QueryRow("SELECT COUNT(*) FROM "+q.table+" WHERE workspace_id = ?", workspaceID).Scan(q.dest)
		if err != nil {
			return WorkspaceStats{}, errs.New(errs.KindStorage, "Store.WorkspaceStats", err)
		}
	}
	return st, nil
}

// Vacuum reclaims space after large deletions (e.g. a workspace re-scan
// that drops many stale files). Not run automatically -- callers decide
// the cadence, since VACUUM rewrites the whole file and briefly doubles
// disk usage.
func (s *Store) Vacuum() error {
	if _, err := s.db.Exec("VACUUM;"); err != nil {
		return errs.New(errs.KindStorage, "Store.Vacuum", err)
	}
	return nil
}
