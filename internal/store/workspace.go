package store

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid"

	"github.com/oxhq/julie/internal/errs"
)

// newRunID mints a ULID: lexicographically sortable by creation time,
// unlike the random uuid.NewString used for workspace identity, so
// `SELECT ... ORDER BY id` on the runs table is also a time order.
func newRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// EnsureWorkspace returns the workspace ID for rootPath, creating the row
// on first sight. Workspace IDs are stable across process restarts so a
// re-opened database reattaches to its prior index instead of starting a
// fresh one.
func (s *Store) EnsureWorkspace(rootPath string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM workspaces WHERE root_path = ?`, rootPath).Scan(&id)
	if err == nil {
		return id, nil
	}

	id = uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO workspaces (id, root_path, created_at) VALUES (?, ?, ?)`,
		id, rootPath, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", errs.New(errs.KindStorage, "Store.EnsureWorkspace", err)
	}
	return id, nil
}

// TouchWorkspace records the current time as the workspace's last
// successful indexing pass.
func (s *Store) TouchWorkspace(workspaceID string) error {
	_, err := s.db.Exec(
		`UPDATE workspaces SET last_indexed_at = ? WHERE id = ?`,
		time.Now().UnixMilli(), workspaceID,
	)
	if err != nil {
		return errs.New(errs.KindStorage, "Store.TouchWorkspace", err)
	}
	return nil
}

// BeginRun records the start of an indexing run (full scan or
// incremental batch) for audit/debugging, mirroring internal/db/api.go's
// BeginRun.
func (s *Store) BeginRun(workspaceID, kind string) (string, error) {
	runID := newRunID()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, workspace_id, kind, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		runID, workspaceID, kind, "running", time.Now().UnixMilli(),
	)
	if err != nil {
		return "", errs.New(errs.KindStorage, "Store.BeginRun", err)
	}
	return runID, nil
}

// FinishRun closes out a run with its final status and counters.
func (s *Store) FinishRun(runID, status string, filesChanged, symbolsWritten int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, files_changed = ?, symbols_written = ? WHERE id = ?`,
		status, time.Now().UnixMilli(), filesChanged, symbolsWritten, runID,
	)
	if err != nil {
		return errs.New(errs.KindStorage, "Store.FinishRun", err)
	}
	return nil
}

// RecordDiagnostic persists a non-fatal extraction warning for later
// inspection (e.g. via a `julie diagnostics` CLI surface).
func (s *Store) RecordDiagnostic(workspaceID, runID, file, severity, message string) error {
	_, err := s.db.Exec(
		`INSERT INTO diagnostics (workspace_id, run_id, file, severity, message) VALUES (?, ?, ?, ?, ?)`,
		workspaceID, runID, file, severity, message,
	)
	if err != nil {
		return errs.New(errs.KindStorage, "Store.RecordDiagnostic", err)
	}
	return nil
}
