package cli

import (
	"fmt"
	"path/filepath"

	"github.com/oxhq/julie/internal/config"
	"github.com/oxhq/julie/internal/embedder"
	"github.com/oxhq/julie/internal/extract/registry"
	"github.com/oxhq/julie/internal/indexer"
	"github.com/oxhq/julie/internal/logging"
	"github.com/oxhq/julie/internal/query"
	"github.com/oxhq/julie/internal/store"
	"github.com/oxhq/julie/internal/trace"
	"github.com/oxhq/julie/internal/vectorstore"
)

// app bundles every long-lived component a subcommand needs, opened once
// from the resolved Config and closed together via Close.
type app struct {
	cfg         *config.Config
	store       *store.Store
	registry    *registry.Registry
	vs          *vectorstore.Store
	embed       *embedder.Engine
	workspaceID string
}

func openApp(cfg *config.Config) (*app, error) {
	root, err := filepath.Abs(cfg.WorkspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	cfg.WorkspaceRoot = root

	st, err := store.Open(filepath.Join(cfg.DataDir, "julie.db"))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	wsID, err := st.EnsureWorkspace(root)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("ensuring workspace: %w", err)
	}

	vs, err := vectorstore.Open(cfg.DataDir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	// A missing or unreadable id_mapping.bin leaves the graph empty; refill
	// it from the embeddings already stored for this workspace.
	if vs.Len() == 0 {
		for after := ""; ; {
			rows, err := st.LoadEmbeddingsBatch(wsID, after, 1000)
			if err != nil || len(rows) == 0 {
				break
			}
			for _, r := range rows {
				_ = vs.InsertBatch([]string{r.SymbolID}, [][]float32{r.Vector})
			}
			after = rows[len(rows)-1].SymbolID
		}
	}

	embed, err := embedder.Open(cfg.ModelDir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("opening embedder: %w", err)
	}

	return &app{
		cfg:         cfg,
		store:       st,
		registry:    registry.New(),
		vs:          vs,
		embed:       embed,
		workspaceID: wsID,
	}, nil
}

func (a *app) Close() error {
	a.embed.Close()
	if a.vs.Dirty() {
		_ = a.vs.Save()
	}
	return a.store.Close()
}

func (a *app) newIndexer() *indexer.Indexer {
	ix := indexer.New(a.store, a.registry, logging.FromEnv(), a.workspaceID, a.cfg.WorkspaceRoot)
	ix.SetEmbedding(a.embed, a.vs)
	return ix
}

func (a *app) newQueryEngine() *query.Engine {
	return query.NewEngine(a.store, a.vs, a.embed, a.cfg.WorkspaceRoot)
}

func (a *app) newTracer() *trace.Tracer {
	return trace.New(a.store, a.workspaceID)
}
