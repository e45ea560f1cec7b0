package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
	"github.com/oxhq/julie/internal/logging"
	"github.com/oxhq/julie/internal/watch"
)

func newWatchCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the workspace and re-index files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := watch.New(cfg.WorkspaceRoot, a.newIndexer(), logging.FromEnv(), cfg.IgnorePatterns)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			w.SetDebounce(cfg.WatchDebounce)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("watching %s (debounce %s)\n", cfg.WorkspaceRoot, cfg.WatchDebounce)
			return w.Run(ctx)
		},
	}
}
