package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/julie/internal/config"
)

func newQueryCommand(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "query <search terms>",
		Short: "Search symbols by name, signature or doc comment (FTS plus semantic if available)",
		Args:  cobra.MinimumNArgs(1),
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

			raw := strings.Join(args, " ")
			hits, err := a.newQueryEngine().Search(ctx, a.workspaceID, raw, limit)
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}

			if len(hits) == 0 {
				fmt.Println("no matches")
				return nil
			}
			for _, h := range hits {
				marker := " "
				if h.ExactMatch {
					marker = "*"
				}
				fmt.Printf("%s [%s] %-40s %s  %s (score %.3f)\n", marker, h.Source, h.Name, h.File, h.Signature, h.Score)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}
