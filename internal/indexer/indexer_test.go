package indexer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/oxhq/julie/internal/extract/registry"
	"github.com/oxhq/julie/internal/store"
)

func newTestIndexer(t *testing.T) (*Indexer, *store.Store, string) {
	t.Helper()
	root := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "julie.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(root)
	if err != nil {
		t.Fatalf("EnsureWorkspace: %v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ix := New(st, registry.New(), log, wsID, root)
	return ix, st, root
}

func TestIndexFilesExtractsGoFunction(t *testing.T) {
	ix, st, root := newTestIndexer(t)
	path := filepath.Join(root, "main.go")
	src := "package main\n\nfunc Greet(name string) string {\n\treturn \"hi \" + name\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	res, err := ix.IndexFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("IndexFiles: %v", err)
	}
	if res.FilesExtracted != 1 {
		t.Fatalf("expected 1 file extracted, got %+v", res)
	}

	wsID, _ := st.EnsureWorkspace(root)
	symbols, err := st.QuerySymbolsByName(wsID, "Greet")
	if err != nil {
		t.Fatalf("QuerySymbolsByName: %v", err)
	}
	if len(symbols) != 1 {
		t.Fatalf("expected to find Greet symbol, got %+v", symbols)
	}
}

func TestIndexFilesSkipsUnchangedFileOnSecondPass(t *testing.T) {
	ix, st, root := newTestIndexer(t)
	path := filepath.Join(root, "main.go")
	src := "package main\n\nfunc Greet(name string) string {\n\treturn \"hi \" + name\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	first, err := ix.IndexFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("IndexFiles (first pass): %v", err)
	}
	if first.FilesExtracted != 1 || first.FilesUnchanged != 0 {
		t.Fatalf("expected the first pass to extract the new file, got %+v", first)
	}

	second, err := ix.IndexFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("IndexFiles (second pass): %v", err)
	}
	if second.FilesExtracted != 0 || second.FilesUnchanged != 1 {
		t.Fatalf("expected the second pass to skip the unchanged file, got %+v", second)
	}
	if second.SymbolsWritten != 0 {
		t.Fatalf("expected zero symbol writes on the unchanged pass, got %+v", second)
	}

	wsID, _ := st.EnsureWorkspace(root)
	symbols, err := st.QuerySymbolsByName(wsID, "Greet")
	if err != nil {
		t.Fatalf("QuerySymbolsByName: %v", err)
	}
	if len(symbols) != 1 {
		t.Fatalf("expected exactly one Greet symbol after both passes, got %+v", symbols)
	}
}

func TestIndexFilesSkipsUnclassifiableFile(t *testing.T) {
	ix, _, root := newTestIndexer(t)
	path := filepath.Join(root, "data.bin")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	res, err := ix.IndexFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("IndexFiles: %v", err)
	}
	if res.FilesSkipped != 1 || res.FilesExtracted != 0 {
		t.Fatalf("expected file to be skipped, got %+v", res)
	}
}

func TestReconcileCascadesOrphans(t *testing.T) {
	ix, st, root := newTestIndexer(t)
	path := filepath.Join(root, "gone.go")
	if err := os.WriteFile(path, []byte("package main\nfunc F() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ix.IndexFiles(context.Background(), []string{path}); err != nil {
		t.Fatalf("IndexFiles: %v", err)
	}

	n, err := ix.Reconcile(map[string]bool{}) // nothing live anymore
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 orphan, got %d", n)
	}

	wsID, _ := st.EnsureWorkspace(root)
	stats, err := st.WorkspaceStats(wsID)
	if err != nil {
		t.Fatalf("WorkspaceStats: %v", err)
	}
	if stats.Files != 0 {
		t.Errorf("expected orphaned file removed, got %+v", stats)
	}
}
