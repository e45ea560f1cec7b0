package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/julie/internal/extract"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "julie.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAndMigrate(t *testing.T) {
	s := openTestStore(t)
	var tblType string
	err := s.db.QueryRow(`SELECT type FROM sqlite_master WHERE name = 'files'`).Scan(&tblType)
	require.NoError(t, err, "expected files table to exist")
	require.Equal(t, "table", tblType)
}

func TestEnsureWorkspaceIsStable(t *testing.T) {
	s := openTestStore(t)
	id1, err := s.EnsureWorkspace("/repo/a")
	require.NoError(t, err)
	id2, err := s.EnsureWorkspace("/repo/a")
	require.NoError(t, err)
	require.Equal(t, id1, id2, "expected stable workspace id across repeated calls")
}

func TestWriteBatchAndQuerySymbols(t *testing.T) {
	s := openTestStore(t)
	wsID, err := s.EnsureWorkspace("/repo/b")
	require.NoError(t, err)

	b, err := s.BeginWrite()
	require.NoError(t, err)

	fileID := "file-1"
	fr := extract.FileRecord{Path: "main.go", Language: "go", Size: 42, Hash: "abc", SymbolCount: 1}
	require.NoError(t, b.UpsertFile(wsID, fr, fileID))

	sym := extract.Symbol{
		ID: "sym-1", File: "main.go", Name: "Add", Kind: extract.KindFunction,
		Language: "go", Signature: "func Add(a, b int) int", Visibility: extract.VisibilityPublic,
		Confidence: 0.9, Hash: "h1",
	}
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, fileID, []extract.Symbol{sym}))
	require.NoError(t, b.Commit())

	got, err := s.QuerySymbolsByName(wsID, "Add")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "sym-1", got[0].ID)
}

func TestGetFileHashReflectsStoredValueAndAbsence(t *testing.T) {
	s := openTestStore(t)
	wsID, err := s.EnsureWorkspace("/repo/hash")
	require.NoError(t, err)

	_, ok, err := s.GetFileHash(wsID, "main.go")
	require.NoError(t, err)
	require.False(t, ok, "unindexed path should report absent, not an empty hash")

	b, err := s.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "main.go", Language: "go", Hash: "abc123"}, "file-hash"))
	require.NoError(t, b.Commit())

	hash, ok, err := s.GetFileHash(wsID, "main.go")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc123", hash)
}

func TestReplaceSymbolsForFileClearsStaleRows(t *testing.T) {
	s := openTestStore(t)
	wsID, _ := s.EnsureWorkspace("/repo/c")
	fileID := "file-2"

	write := func(symbols []extract.Symbol) {
		b, err := s.BeginWrite()
		require.NoError(t, err)
		require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "a.go", Language: "go"}, fileID))
		require.NoError(t, b.ReplaceSymbolsForFile(wsID, fileID, symbols))
		require.NoError(t, b.Commit())
	}

	write([]extract.Symbol{{ID: "s1", Name: "Old", Kind: extract.KindFunction, File: "a.go"}})
	write([]extract.Symbol{{ID: "s2", Name: "New", Kind: extract.KindFunction, File: "a.go"}})

	got, err := s.QuerySymbolsByFile(wsID, "a.go")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "New", got[0].Name)
}

func TestDeleteFileCascade(t *testing.T) {
	s := openTestStore(t)
	wsID, _ := s.EnsureWorkspace("/repo/d")
	fileID := "file-3"

	b, err := s.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "gone.go", Language: "go"}, fileID))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, fileID, []extract.Symbol{{ID: "s3", Name: "Gone", Kind: extract.KindFunction, File: "gone.go"}}))
	require.NoError(t, b.Commit())

	require.NoError(t, s.DeleteFileCascade(wsID, "gone.go"))

	got, err := s.QuerySymbolsByName(wsID, "Gone")
	require.NoError(t, err)
	require.Empty(t, got, "expected symbol removed by cascade")
}

func TestWorkspaceStats(t *testing.T) {
	s := openTestStore(t)
	wsID, _ := s.EnsureWorkspace("/repo/e")

	b, err := s.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "x.go", Language: "go"}, "file-4"))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, "file-4", []extract.Symbol{{ID: "s4", Name: "X", Kind: extract.KindFunction, File: "x.go"}}))
	require.NoError(t, b.Commit())

	stats, err := s.WorkspaceStats(wsID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Files)
	require.EqualValues(t, 1, stats.Symbols)
}
