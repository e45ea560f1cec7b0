package trace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/store"
)

func setupTracer(t *testing.T) (*Tracer, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "julie.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(dir)
	require.NoError(t, err)

	b, err := st.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "a.go", Language: "go"}, "file-a"))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, "file-a", []extract.Symbol{
		{ID: "caller", Name: "Caller", File: "a.go", Kind: extract.KindFunction},
		{ID: "callee", Name: "Callee", File: "a.go", Kind: extract.KindFunction},
	}))
	require.NoError(t, b.ReplaceRelationshipsForFile(wsID, "file-a", []extract.Relationship{
		{FromSymbolID: "caller", ToSymbolID: "callee", ToName: "Callee", Kind: extract.RelCalls},
	}))
	require.NoError(t, b.Commit())

	return New(st, wsID), wsID
}

func TestWalkForwardFindsDirectCallee(t *testing.T) {
	tracer, _ := setupTracer(t)
	nodes, err := tracer.Walk("caller", Forward, 3)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, "Caller", nodes[0].Symbol.Name)
	require.Equal(t, "Callee", nodes[1].Symbol.Name)
	require.Equal(t, 1, nodes[1].Depth)
}

func TestWalkBackwardFindsCaller(t *testing.T) {
	tracer, _ := setupTracer(t)
	nodes, err := tracer.Walk("callee", Backward, 3)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, "Callee", nodes[0].Symbol.Name)
	require.Equal(t, "Caller", nodes[1].Symbol.Name)
}

func TestWalkUnknownRootReturnsEmpty(t *testing.T) {
	tracer, _ := setupTracer(t)
	nodes, err := tracer.Walk("does-not-exist", Forward, 3)
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestWalkResolvesDanglingRelationshipByNameAcrossLanguages(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "julie.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(dir)
	require.NoError(t, err)

	b, err := st.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "a.py", Language: "python"}, "file-py"))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, "file-py", []extract.Symbol{
		{ID: "py-caller", Name: "call_get_user", File: "a.py", Kind: extract.KindFunction},
	}))
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "b.go", Language: "go"}, "file-go"))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, "file-go", []extract.Symbol{
		{ID: "go-callee", Name: "GetUser", File: "b.go", Kind: extract.KindFunction},
	}))
	require.NoError(t, b.ReplaceRelationshipsForFile(wsID, "file-py", []extract.Relationship{
		{FromSymbolID: "py-caller", ToName: "get_user", Kind: extract.RelCalls},
	}))
	require.NoError(t, b.Commit())

	tracer := New(st, wsID)
	nodes, err := tracer.Walk("py-caller", Forward, 2)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, "GetUser", nodes[1].Symbol.Name)
}
