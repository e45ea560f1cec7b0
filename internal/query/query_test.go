package query

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/julie/internal/embedder"
	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/store"
	"github.com/oxhq/julie/internal/vectorstore"
)

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		`"exact phrase"`: KindExact,
		"content:foo":     KindContent,
		"getUserById":     KindSymbol,
		"get_user_by_id":  KindSymbol,
		"how does auth work": KindStandard,
	}
	for raw, want := range cases {
		require.Equal(t, want, Classify(raw), "Classify(%q)", raw)
	}
}

func TestExpandDedupsCasingVariants(t *testing.T) {
	variants := Expand("get_user")
	require.Contains(t, variants, "get_user")
	require.Contains(t, variants, "getUser")
	require.Contains(t, variants, "GetUser")

	seen := make(map[string]bool)
	for _, v := range variants {
		require.False(t, seen[v], "duplicate variant %q", v)
		seen[v] = true
	}
}

func setupEngine(t *testing.T) (*Engine, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "julie.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(dir)
	require.NoError(t, err)

	b, err := st.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "user.go", Language: "go"}, "file-1"))
	require.NoError(t, b.ReplaceSymbolsForFile(wsID, "file-1", []extract.Symbol{
		{ID: "sym-1", Name: "GetUser", File: "user.go", Kind: extract.KindFunction, Signature: "func GetUser(id string) *User"},
		{ID: "sym-2", Name: "GetUserAll", File: "user.go", Kind: extract.KindFunction, Signature: "func GetUserAll() []*User"},
	}))
	require.NoError(t, b.Commit())

	vs, err := vectorstore.Open(dir)
	require.NoError(t, err)
	embed, err := embedder.Open(filepath.Join(dir, "models"))
	require.NoError(t, err)

	return NewEngine(st, vs, embed, dir), st, wsID
}

func TestSearchFallsBackToFTSWithoutEmbeddings(t *testing.T) {
	engine, _, wsID := setupEngine(t)
	hits, err := engine.Search(context.Background(), wsID, "GetUser", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "GetUser", hits[0].Name, "exact-match bonus should rank GetUser above GetUserAll")
	require.Equal(t, "fts", hits[0].Source)
}

func TestExpandWildcardsOnlyFiresForMultiTokenQueries(t *testing.T) {
	require.Empty(t, expandWildcards("GetUser"))
	variants := expandWildcards("get user")
	require.Contains(t, variants, "get*")
	require.Contains(t, variants, "user*")
}

func TestSearchRoutesContentQueriesToFileIndex(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "julie.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("a reminder about rate limiting"), 0o644))

	b, err := st.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, b.UpsertFile(wsID, extract.FileRecord{Path: "notes.md", Language: "markdown"}, "file-notes"))
	require.NoError(t, b.Commit())

	vs, err := vectorstore.Open(dir)
	require.NoError(t, err)
	embed, err := embedder.Open(filepath.Join(dir, "models"))
	require.NoError(t, err)

	engine := NewEngine(st, vs, embed, dir)
	hits, err := engine.Search(context.Background(), wsID, "content:notes", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	require.Equal(t, "notes.md", hits[0].File)
	require.Contains(t, hits[0].Snippet, "rate limiting")
}
