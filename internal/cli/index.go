package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
	"github.com/oxhq/julie/internal/indexer"
)

func newIndexCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the workspace: extract symbols from every file and write them to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			files, err := indexer.Snapshot(ctx, cfg.WorkspaceRoot, cfg.IgnorePatterns)
			if err != nil {
				return fmt.Errorf("snapshotting workspace: %w", err)
			}

			paths := make([]string, len(files))
			live := make(map[string]bool, len(files))
			for i, f := range files {
				paths[i] = f.Path
				live[f.Path] = true
			}

			ix := a.newIndexer()
			result, err := ix.IndexFiles(ctx, paths)
			if err != nil {
				return fmt.Errorf("indexing files: %w", err)
			}

			orphans, err := ix.Reconcile(live)
			if err != nil {
				return fmt.Errorf("reconciling deleted files: %w", err)
			}

			fmt.Printf("indexed %d files (%d unchanged, %d skipped, %d orphaned removed), wrote %d symbols, embedded %d\n",
				result.FilesExtracted, result.FilesUnchanged, result.FilesSkipped, orphans,
				result.SymbolsWritten, result.SymbolsEmbedded)
			for _, d := range result.Diagnostics {
				fmt.Printf("  %s: %s: %s\n", d.File, d.Severity, d.Message)
			}
			return nil
		},
	}
	return cmd
}
