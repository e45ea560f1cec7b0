package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/julie/internal/extract/registry"
	"github.com/oxhq/julie/internal/indexer"
	"github.com/oxhq/julie/internal/store"
)

func TestWatcherIndexesFileWrittenAfterStart(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "julie.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	wsID, err := st.EnsureWorkspace(root)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ix := indexer.New(st, registry.New(), log, wsID, root)

	w, err := New(root, ix, log, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\nfunc Watched() {}\n"), 0o644))

	deadline := time.Now().Add(1500 * time.Millisecond)
	var symbols []string
	for time.Now().Before(deadline) {
		syms, err := st.QuerySymbolsByName(wsID, "Watched")
		require.NoError(t, err)
		if len(syms) > 0 {
			symbols = []string{syms[0].Name}
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NotEmpty(t, symbols, "expected the watcher to index the new file within the timeout")

	cancel()
	<-done
}
