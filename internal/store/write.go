package store

import (
	"database/sql"

	"github.com/oxhq/julie/internal/errs"
	"github.com/oxhq/julie/internal/extract"
)

// WriteBatch is a single transaction covering one file's extraction
// result: upsert the file row, replace its symbols/identifiers/
// relationships, and keep the FTS mirrors (or their fallback tables) in
// step -- grounded on internal/db/api.go's pattern of one *sql.Tx per
// logical operation with execWithRetry underneath.
type WriteBatch struct {
	tx      *sql.Tx
	hasFTS5 bool
}

// BeginWrite opens a transaction for one file's worth of writes. The
// caller must call Commit or Rollback.
func (s *Store) BeginWrite() (*WriteBatch, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, errs.New(errs.KindStorage, "store.BeginWrite", err)
	}
	return &WriteBatch{tx: tx, hasFTS5: s.hasFTS5}, nil
}

func (b *WriteBatch) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.Commit", err)
	}
	return nil
}

func (b *WriteBatch) Rollback() error {
	return b.tx.Rollback()
}

// UpsertFile writes or updates a file's bookkeeping row.
func (b *WriteBatch) UpsertFile(workspaceID string, f extract.FileRecord, fileID string) error {
	_, err := execWithRetry(b.tx, `
		INSERT INTO files (id, workspace_id, path, language, size, mod_time, hash, symbol_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (workspace_id, path) DO UPDATE SET
			language = excluded.language,
			size = excluded.size,
			mod_time = excluded.mod_time,
			hash = excluded.hash,
			symbol_count = excluded.symbol_count
	`, fileID, workspaceID, f.Path, f.Language, f.Size, f.ModTime, f.Hash, f.SymbolCount)
	if err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.UpsertFile", err)
	}

	if b.hasFTS5 {
		_, err = b.tx.Exec(`DELETE FROM files_fts WHERE file_id = ?`, fileID)
		if err != nil {
			return errs.New(errs.KindStorage, "WriteBatch.UpsertFile(fts delete)", err)
		}
		_, err = b.tx.Exec(`INSERT INTO files_fts (file_id, path) VALUES (?, ?)`, fileID, f.Path)
	} else {
		_, err = b.tx.Exec(`
			INSERT INTO files_fts (file_id, path) VALUES (?, ?)
			ON CONFLICT (file_id) DO UPDATE SET path = excluded.path
		`, fileID, f.Path)
	}
	if err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.UpsertFile(fts)", err)
	}
	return nil
}

// ReplaceSymbolsForFile deletes a file's prior symbols and inserts the
// freshly extracted set, keeping the FTS mirror in lockstep.
func (b *WriteBatch) ReplaceSymbolsForFile(workspaceID, fileID string, symbols []extract.Symbol) error {
	if _, err := b.tx.Exec(`DELETE FROM symbols_fts WHERE file_id = ?`, fileID); err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.ReplaceSymbolsForFile(fts delete)", err)
	}
	if _, err := b.tx.Exec(`DELETE FROM symbols WHERE file_id = ?`, fileID); err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.ReplaceSymbolsForFile(delete)", err)
	}

	for _, sym := range symbols {
		_, err := execWithRetry(b.tx, `
			INSERT INTO symbols (
				id, workspace_id, file_id, name, kind, language,
				start_byte, end_byte, start_line, start_col, end_line, end_col,
				signature, doc_comment, parent_symbol_id, scope, visibility,
				semantic_group, confidence, hash
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			sym.ID, workspaceID, fileID, sym.Name, string(sym.Kind), sym.Language,
			sym.Range.StartByte, sym.Range.EndByte, sym.Range.StartLine, sym.Range.StartCol,
			sym.Range.EndLine, sym.Range.EndCol,
			sym.Signature, sym.DocComment, nullIfEmpty(sym.ParentSymbolID), sym.Scope,
			string(sym.Visibility), sym.SemanticGroup, sym.Confidence, sym.Hash,
		)
		if err != nil {
			return errs.New(errs.KindStorage, "WriteBatch.ReplaceSymbolsForFile(insert)", err)
		}

		_, err = b.tx.Exec(
			`INSERT INTO symbols_fts (symbol_id, file_id, name, signature, doc_comment) VALUES (?, ?, ?, ?, ?)`,
			sym.ID, fileID, sym.Name, sym.Signature, sym.DocComment,
		)
		if err != nil {
			return errs.New(errs.KindStorage, "WriteBatch.ReplaceSymbolsForFile(fts insert)", err)
		}
	}
	return nil
}

// ReplaceIdentifiersForFile mirrors ReplaceSymbolsForFile for identifier
// occurrences (the tracer's raw fuel).
func (b *WriteBatch) ReplaceIdentifiersForFile(workspaceID, fileID string, symbolIDByPath map[string]string, idents []extract.Identifier) error {
	if _, err := b.tx.Exec(`DELETE FROM identifiers WHERE file_id = ?`, fileID); err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.ReplaceIdentifiersForFile", err)
	}
	for _, id := range idents {
		var containing any
		if id.ContainingSymbol != "" {
			if resolved, ok := symbolIDByPath[id.ContainingSymbol]; ok {
				containing = resolved
			} else {
				containing = id.ContainingSymbol
			}
		}
		_, err := execWithRetry(b.tx, `
			INSERT INTO identifiers (workspace_id, file_id, name, kind, start_byte, end_byte, line, col, containing_symbol_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, workspaceID, fileID, id.Name, string(id.Kind), id.StartByte, id.EndByte, id.Line, id.Col, containing)
		if err != nil {
			return errs.New(errs.KindStorage, "WriteBatch.ReplaceIdentifiersForFile(insert)", err)
		}
	}
	return nil
}

// ReplaceRelationshipsForFile writes the typed edges discovered in one
// file. ToSymbolID may be empty -- unresolved relationships are filled in
// by exact name by ResolveDanglingRelationships after each indexing batch,
// and by casing variant at trace time (SPEC_FULL.md Open Question #1).
func (b *WriteBatch) ReplaceRelationshipsForFile(workspaceID, fileID string, rels []extract.Relationship) error {
	if _, err := b.tx.Exec(`DELETE FROM relationships WHERE file_id = ?`, fileID); err != nil {
		return errs.New(errs.KindStorage, "WriteBatch.ReplaceRelationshipsForFile", err)
	}
	for _, r := range rels {
		_, err := execWithRetry(b.tx, `
			INSERT INTO relationships (workspace_id, from_symbol_id, to_symbol_id, to_name, kind, file_id, line, confidence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, workspaceID, r.FromSymbolID, nullIfEmpty(r.ToSymbolID), r.ToName, string(r.Kind), fileID, r.Line, r.Confidence)
		if err != nil {
			return errs.New(errs.KindStorage, "WriteBatch.ReplaceRelationshipsForFile(insert)", err)
		}
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ResolveDanglingRelationships fills in to_symbol_id for any relationship
// in the workspace whose target name now matches a known symbol. Called
// after a batch commits so later-indexed files resolve earlier forward
// references without a second extraction pass.
func (s *Store) ResolveDanglingRelationships(workspaceID string) (int64, error) {
	res, err := s.db.Exec(`
		UPDATE relationships
		SET to_symbol_id = (
			SELECT sy.id FROM symbols sy
			WHERE sy.workspace_id = relationships.workspace_id AND sy.name = relationships.to_name
			LIMIT 1
		)
		WHERE workspace_id = ? AND to_symbol_id IS NULL
		AND EXISTS (
			SELECT 1 FROM symbols sy WHERE sy.workspace_id = relationships.workspace_id AND sy.name = relationships.to_name
		)
	`, workspaceID)
	if err != nil {
		return 0, errs.New(errs.KindStorage, "Store.ResolveDanglingRelationships", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
