// Package vectorstore wraps a coder/hnsw approximate-nearest-neighbor
// index over symbol embeddings. The index owns its own copy of every
// vector (hnsw.NewGraph stores nodes by value, not by borrowed slice
// header) so there's no lifetime coupling back to the store's sqlite
// BLOB buffers once a vector has been inserted.
package vectorstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/coder/hnsw"

	"github.com/oxhq/julie/internal/errs"
)

const idMappingFile = "id_mapping.bin"

// Store is one workspace's semantic index: an HNSW graph keyed directly
// by symbol ID. Save persists it as id_mapping.bin, a JSON list of
// (symbol ID, vector) pairs that Open re-inserts; no separate graph file
// is written.
type Store struct {
	mu        sync.RWMutex
	graph     *hnsw.Graph[string]
	dir       string
	dirty     bool
}

// Open loads (or creates) the HNSW index for a workspace under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.New(errs.KindIO, "vectorstore.Open", err)
	}
	s := &Store{graph: hnsw.NewGraph[string](), dir: dir}
	if err := s.loadIfExists(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadIfExists() error {
	path := filepath.Join(s.dir, idMappingFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errs.New(errs.KindIO, "vectorstore.loadIfExists", err)
	}

	var dump []dumpEntry
	if err := json.Unmarshal(data, &dump); err != nil {
		// Corruption is recoverable: rebuild from scratch rather than
		// fail workspace open (SPEC_FULL.md Open Question #2).
		return nil
	}
	for _, e := range dump {
		s.graph.Add(hnsw.MakeNode(e.ID, e.Vector))
	}
	return nil
}

type dumpEntry struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
}

// InsertBatch adds (or replaces) vectors for the given symbol IDs. Later
// inserts of the same ID are treated as incremental appends, per
// SPEC_FULL.md Open Question #2 -- a full rebuild is Clear followed by
// re-inserting every vector.
func (s *Store) InsertBatch(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return errs.New(errs.KindIndex, "vectorstore.InsertBatch", errMismatch{})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range ids {
		s.graph.Add(hnsw.MakeNode(id, vectors[i]))
	}
	s.dirty = true
	return nil
}

type errMismatch struct{}

func (errMismatch) Error() string { return "ids and vectors length mismatch" }

// SearchResult is one nearest-neighbor hit.
type SearchResult struct {
	SymbolID string
	Score    float32 // distance to the query vector; lower is closer
}

// SearchSimilar returns the k nearest symbols to query by cosine
// distance (the metric coder/hnsw.NewGraph defaults to).
func (s *Store) SearchSimilar(query []float32, k int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	neighbors := s.graph.Search(query, k)
	out := make([]SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, SearchResult{SymbolID: n.Key, Score: s.graph.Distance(query, n.Value)})
	}
	return out, nil
}

// Clear drops every vector, used before a full rebuild.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = hnsw.NewGraph[string]()
	s.dirty = true
}

// Save persists the id->vector mapping to id_mapping.bin so the next
// Open can warm-start instead of re-embedding the whole workspace.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dump []dumpEntry
	for _, node := range s.graph.Nodes() {
		dump = append(dump, dumpEntry{ID: node.Key, Vector: node.Value})
	}
	data, err := json.Marshal(dump)
	if err != nil {
		return errs.New(errs.KindIO, "vectorstore.Save", err)
	}
	tmp := filepath.Join(s.dir, idMappingFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.New(errs.KindIO, "vectorstore.Save", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, idMappingFile)); err != nil {
		return errs.New(errs.KindIO, "vectorstore.Save", err)
	}
	s.dirty = false
	return nil
}

// Len reports how many vectors are currently indexed.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.graph.Nodes())
}

// Dirty reports whether InsertBatch/Clear has run since the last Save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}
