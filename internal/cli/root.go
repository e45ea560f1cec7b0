// Package cli assembles Julie's cobra command tree: index, watch, query,
// trace and stats, each a thin wrapper that opens a store.Store for the
// workspace and delegates to internal/indexer, internal/watch,
// internal/query or internal/trace. Grounded on the teacher's
// cmd/morfx/main.go dispatch shape, generalized from one flat operation
// flag to a cobra subcommand per verb since Julie exposes several
// distinct read-only operations instead of one parameterized mutation.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
)

// NewRootCommand builds the juliectl command tree.
func NewRootCommand() *cobra.Command {
	cfg := config.LoadConfig()

	root := &cobra.Command{
		Use:   "juliectl",
		Short: "Julie indexes and searches a polyglot codebase",
	}
	root.PersistentFlags().StringVar(&cfg.WorkspaceRoot, "workspace", cfg.WorkspaceRoot, "workspace root directory")
	root.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the index database and vector store")
	root.PersistentFlags().StringVar(&cfg.ModelDir, "model-dir", cfg.ModelDir, "directory containing model.onnx and tokenizer.json")

	root.AddCommand(
		newIndexCommand(cfg),
		newWatchCommand(cfg),
		newQueryCommand(cfg),
		newTraceCommand(cfg),
		newStatsCommand(cfg),
	)
	return root
}
