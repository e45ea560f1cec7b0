package store

import (
	"encoding/binary"
	"math"

	"github.com/oxhq/julie/internal/errs"
)

// UpsertEmbedding stores a symbol's embedding vector, little-endian
// float32 packed into a BLOB column (no mmap-borrowed lifetime concerns
// once it's in sqlite -- the vector store's HNSW index is the one that
// has to own its copy, see internal/vectorstore).
func (s *Store) UpsertEmbedding(workspaceID, symbolID, model string, vec []float32) error {
	buf := make([]byte, len(vec)*4)
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	_, err := s.db.Exec(`
		INSERT INTO embeddings (symbol_id, workspace_id, model, dim, vector) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (symbol_id) DO UPDATE SET model = excluded.model, dim = excluded.dim, vector = excluded.vector
	`, symbolID, workspaceID, model, len(vec), buf)
	if err != nil {
		return errs.New(errs.KindStorage, "Store.UpsertEmbedding", err)
	}
	return nil
}

// EmbeddingRow is one stored vector, decoded back to float32.
type EmbeddingRow struct {
	SymbolID string
	Vector   []float32
}

// LoadEmbeddingsBatch streams up to limit embeddings starting after
// afterSymbolID (exclusive), for paged HNSW index warm-up on startup.
func (s *Store) LoadEmbeddingsBatch(workspaceID, afterSymbolID string, limit int) ([]EmbeddingRow, error) {
	rows, err := s.db.Query(`
		SELECT symbol_id, dim, vector FROM embeddings
		WHERE workspace_id = ? AND symbol_id > ?
		ORDER BY symbol_id LIMIT ?
	`, workspaceID, afterSymbolID, limit)
	if err != nil {
		return nil, errs.New(errs.KindStorage, "Store.LoadEmbeddingsBatch", err)
	}
	defer rows.Close()

	var out []EmbeddingRow
	for rows.Next() {
		var symbolID string
		var dim int
		var buf []byte
		if err := rows.Scan(&symbolID, &dim, &buf); err != nil {
			return nil, errs.New(errs.KindStorage, "Store.LoadEmbeddingsBatch", err)
		}
		vec := make([]float32, dim)
		for i := range vec {
			vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		}
		out = append(out, EmbeddingRow{SymbolID: symbolID, Vector: vec})
	}
	return out, rows.Err()
}

// CountEmbeddings reports how many symbols in a workspace have a stored
// vector -- the query layer's signal for whether semantic search is
// available at all (SPEC_FULL.md Open Question #3: silently degrade to
// pure FTS when this is zero).
func (s *Store) CountEmbeddings(workspaceID string) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM embeddings WHERE workspace_id = ?`, workspaceID).Scan(&n)
	if err != nil {
		return 0, errs.New(errs.KindStorage, "Store.CountEmbeddings", err)
	}
	return n, nil
}
