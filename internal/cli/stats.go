package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
)

func newStatsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print workspace index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.store.WorkspaceStats(a.workspaceID)
			if err != nil {
				return fmt.Errorf("reading stats: %w", err)
			}
			fmt.Printf("files:         %d\n", st.Files)
			fmt.Printf("symbols:       %d\n", st.Symbols)
			fmt.Printf("identifiers:   %d\n", st.Identifiers)
			fmt.Printf("relationships: %d\n", st.Relationships)
			fmt.Printf("embeddings:    %d\n", st.Embeddings)
			fmt.Printf("vector index:  %d vectors (semantic search %s)\n", a.vs.Len(), availability(a.embed.Available()))
			return nil
		},
	}
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable -- no model loaded"
}
