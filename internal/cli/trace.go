package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
	"github.com/oxhq/julie/internal/trace"
)

func newTraceCommand(cfg *config.Config) *cobra.Command {
	var backward bool
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "trace <symbol-name>",
		Short: "Walk the call graph forward (callees) or backward (callers) from a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			matches, err := a.store.QuerySymbolsByName(a.workspaceID, args[0])
			if err != nil {
				return fmt.Errorf("resolving symbol: %w", err)
			}
			if len(matches) == 0 {
				fmt.Printf("no symbol named %q\n", args[0])
				return nil
			}

			dir := trace.Forward
			if backward {
				dir = trace.Backward
			}

			nodes, err := a.newTracer().Walk(matches[0].ID, dir, maxDepth)
			if err != nil {
				return fmt.Errorf("tracing: %w", err)
			}
			for _, n := range nodes {
				fmt.Printf("%s%s  %s (%s)\n", strings.Repeat("  ", n.Depth), n.Symbol.Name, n.Symbol.File, n.Via)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&backward, "backward", false, "trace callers instead of callees")
	cmd.Flags().IntVar(&maxDepth, "depth", 5, "maximum hops to walk")
	return cmd
}
