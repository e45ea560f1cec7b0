package store

import (
	"database/sql"
	"strings"

	"github.com/oxhq/julie/internal/errs"
	"github.com/oxhq/julie/internal/extract"
)

// QuerySymbolsByName returns symbols with an exact name match in a
// workspace, ordered by file path for deterministic output.
func (s *Store) QuerySymbolsByName(workspaceID, name string) ([]extract.Symbol, error) {
	rows, err := s.db.Query(`
		SELECT sy.id, sy.file_id, f.path, sy.name, sy.kind, sy.language,
			sy.start_byte, sy.end_byte, sy.start_line, sy.start_col, sy.end_line, sy.end_col,
			sy.signature, sy.doc_comment, COALESCE(sy.parent_symbol_id, ''), sy.scope, sy.visibility,
			sy.semantic_group, sy.confidence, sy.hash
		FROM symbols sy JOIN files f ON sy.file_id = f.id
		WHERE sy.workspace_id = ? AND sy.name = ?
		ORDER BY f.path, sy.start_line
	`, workspaceID, name)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.QuerySymbolsByName", err)
	}
	defer rows.Close()
	return scanSymbols(rows, workspaceID)
}

// QuerySymbolsByFile returns every symbol declared in one file, ordered
// by source position.
func (s *Store) QuerySymbolsByFile(workspaceID, path string) ([]extract.Symbol, error) {
	rows, err := s.db.Query(`
		SELECT sy.id, sy.file_id, f.path, sy.name, sy.kind, sy.language,
			sy.start_byte, sy.end_byte, sy.start_line, sy.start_col, sy.end_line, sy.end_col,
			sy.signature, sy.doc_comment, COALESCE(sy.parent_symbol_id, ''), sy.scope, sy.visibility,
			sy.semantic_group, sy.confidence, sy.hash
		FROM symbols sy JOIN files f ON sy.file_id = f.id
		WHERE sy.workspace_id = ? AND f.path = ?
		ORDER BY sy.start_line
	`, workspaceID, path)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.QuerySymbolsByFile", err)
	}
	defer rows.Close()
	return scanSymbols(rows, workspaceID)
}

// GetSymbol fetches a single symbol by its deterministic ID.
func (s *Store) GetSymbol(symbolID string) (extract.Symbol, bool, error) {
	rows, err := s.db.Query(`
		SELECT sy.id, sy.file_id, f.path, sy.name, sy.kind, sy.language,
			sy.start_byte, sy.end_byte, sy.start_line, sy.start_col, sy.end_line, sy.end_col,
			sy.signature, sy.doc_comment, COALESCE(sy.parent_symbol_id, ''), sy.scope, sy.visibility,
			sy.semantic_group, sy.confidence, sy.hash
		FROM symbols sy JOIN files f ON sy.file_id = f.id
		WHERE sy.id = ?
	`, symbolID)
	if err != nil {
		return extract.Symbol{}, false, errs.New(errs.KindStorage, "Store.GetSymbol", err)
	}
	defer rows.Close()
	out, err := scanSymbols(rows, "")
	if err != nil {
		return extract.Symbol{}, false, err
	}
	if len(out) == 0 {
		return extract.Symbol{}, false, nil
	}
	return out[0], true, nil
}

func scanSymbols(rows *sql.Rows, workspaceID string) ([]extract.Symbol, error) {
	var out []extract.Symbol
	for rows.Next() {
		var sym extract.Symbol
		var fileID, kind, vis string
		if err := rows.Scan(
			&sym.ID, &fileID, &sym.File, &sym.Name, &kind, &sym.Language,
			&sym.Range.StartByte, &sym.Range.EndByte, &sym.Range.StartLine, &sym.Range.StartCol,
			&sym.Range.EndLine, &sym.Range.EndCol,
			&sym.Signature, &sym.DocComment, &sym.ParentSymbolID, &sym.Scope, &vis,
			&sym.SemanticGroup, &sym.Confidence, &sym.Hash,
		); err != nil {
			return nil, errs.New(errs.KindStorage, "store.scanSymbols", err)
		}
		sym.Kind = extract.SymbolKind(kind)
		sym.Visibility = extract.Visibility(vis)
		sym.WorkspaceID = workspaceID
		out = append(out, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.New(errs.KindStorage, "store.scanSymbols", err)
	}
	return out, nil
}

// GetFileHash returns the content hash stored for a path, if the file has
// been indexed before. Used by the indexer's hash-diff skip path
// (spec.md §4.F step 2) so unchanged files cost one lookup, not a
// re-parse and rewrite.
func (s *Store) GetFileHash(workspaceID, path string) (string, bool, error) {
	var hash string
	err := s.db.QueryRow(`SELECT hash FROM files WHERE workspace_id = ? AND path = ?`, workspaceID, path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.New(errs.KindStorage, "Store.GetFileHash", err)
	}
	return hash, true, nil
}

// SymbolHit is one FTS match, carrying the bm25-ish rank sqlite assigns
// (lower is better) for the query layer's fusion ranker to consume.
type SymbolHit struct {
	SymbolID string
	Name     string
	FileID   string
	Rank     float64
}

// FTSSearchSymbols runs a full-text query over symbol name/signature/doc
// text. Falls back to a LIKE scan when the store has no FTS5 module.
func (s *Store) FTSSearchSymbols(workspaceID, query string, limit int) ([]SymbolHit, error) {
	var rows *sql.Rows
	var err error
	if s.hasFTS5 {
		rows, err = s.db.Query(`
			SELECT sf.symbol_id, sf.name, sf.file_id, bm25(symbols_fts) AS rank
			FROM symbols_fts sf
			JOIN symbols sy ON sy.id = sf.symbol_id
			WHERE symbols_fts MATCH ? AND sy.workspace_id = ?
			ORDER BY rank LIMIT ?
		`, query, workspaceID, limit)
	} else {
		// LIKE has no FTS syntax: drop the quotes and '*' suffix the query
		// layer adds for MATCH.
		pattern := "%" + strings.Trim(query, `"*`) + "%"
		rows, err = s.db.Query(`
			SELECT sf.symbol_id, sf.name, sf.file_id, 0.0 AS rank
			FROM symbols_fts sf
			JOIN symbols sy ON sy.id = sf.symbol_id
			WHERE sy.workspace_id = ? AND (sf.name LIKE ? OR sf.signature LIKE ? OR sf.doc_comment LIKE ?)
			LIMIT ?
		`, workspaceID, pattern, pattern, pattern, limit)
	}
	if err != nil {
		return nil, errs.New(errs.KindQueryInvalid, "Store.FTSSearchSymbols", err)
	}
	defer rows.Close()

	var hits []SymbolHit
	for rows.Next() {
		var h SymbolHit
		if err := rows.Scan(&h.SymbolID, &h.Name, &h.FileID, &h.Rank); err != nil {
			return nil, errs.New(errs.KindStorage, "Store.FTSSearchSymbols", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// FileHit is one path match from FTSSearchFiles.
type FileHit struct {
	FileID string
	Path   string
	Rank   float64
}

// FTSSearchFiles full-text searches file paths (useful for "find file"
// style queries distinct from symbol search).
func (s *Store) FTSSearchFiles(workspaceID, query string, limit int) ([]FileHit, error) {
	var rows *sql.Rows
	var err error
	if s.hasFTS5 {
		rows, err = s.db.Query(`
			SELECT ff.file_id, ff.path, bm25(files_fts) AS rank
			FROM files_fts ff
			JOIN files f ON f.id = ff.file_id
			WHERE files_fts MATCH ? AND f.workspace_id = ?
			ORDER BY rank LIMIT ?
		`, query, workspaceID, limit)
	} else {
		pattern := "%" + strings.Trim(query, `"*`) + "%"
		rows, err = s.db.Query(`
			SELECT ff.file_id, ff.path, 0.0 AS rank
			FROM files_fts ff
			JOIN files f ON f.id = ff.file_id
			WHERE f.workspace_id = ? AND ff.path LIKE ?
			LIMIT ?
		`, workspaceID, pattern, limit)
	}
	if err != nil {
		return nil, errs.New(errs.KindQueryInvalid, "Store.FTSSearchFiles", err)
	}
	defer rows.Close()

	var hits []FileHit
	for rows.Next() {
		var h FileHit
		if err := rows.Scan(&h.FileID, &h.Path, &h.Rank); err != nil {
			return nil, errs.New(errs.KindStorage, "Store.FTSSearchFiles", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// RelationshipsFrom returns outgoing edges for a symbol, used by the
// cross-language tracer's forward walk.
func (s *Store) RelationshipsFrom(symbolID string) ([]extract.Relationship, error) {
	rows, err := s.db.Query(`
		SELECT from_symbol_id, COALESCE(to_symbol_id, ''), to_name, kind, line, confidence
		FROM relationships WHERE from_symbol_id = ?
	`, symbolID)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.RelationshipsFrom", err)
	}
	defer rows.Close()
	return scanRelationships(rows)
}

// RelationshipsTo returns incoming edges targeting a symbol, used by the
// tracer's backward walk.
func (s *Store) RelationshipsTo(symbolID string) ([]extract.Relationship, error) {
	rows, err := s.db.Query(`
		SELECT from_symbol_id, COALESCE(to_symbol_id, ''), to_name, kind, line, confidence
		FROM relationships WHERE to_symbol_id = ?
	`, symbolID)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.RelationshipsTo", err)
	}
	defer rows.Close()
	return scanRelationships(rows)
}

func scanRelationships(rows *sql.Rows) ([]extract.Relationship, error) {
	var out []extract.Relationship
	for rows.Next() {
		var r extract.Relationship
		var kind string
		if err := rows.Scan(&r.FromSymbolID, &r.ToSymbolID, &r.ToName, &kind, &r.Line, &r.Confidence); err != nil {
			return nil, errs.New(errs.KindStorage, "store.scanRelationships", err)
		}
		r.Kind = extract.RelationshipKind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
