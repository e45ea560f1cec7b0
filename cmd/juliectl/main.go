// Command juliectl is Julie's command-line entrypoint: index a workspace,
// watch it for changes, search it, and trace call graphs across language
// boundaries. Grounded on the teacher's cmd/morfx/main.go pflag-driven
// dispatch, rebuilt on cobra (already part of the teacher's own dependency
// tree via spf13/pflag) since a multi-subcommand tool is cobra's natural
// shape rather than one flat flag set.
package main

import (
	"fmt"
	"os"

	"github.com/oxhq/julie/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
