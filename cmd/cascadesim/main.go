// Cascadesim -- discrete-event simulator for cascade message delivery
// over a randomly deployed wireless node field.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// rootCmd is the top-level cobra command. cascadesim has a single
// meaningful subcommand, run, but is kept cobra-based (rather than
// bare flag parsing) so future subcommands -- a dry-run config
// validator, a point-placement preview -- have a natural home.
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cascadesim",
		Short:         "Simulate cascade message delivery over a wireless node field",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(versionCmd())
	return root
}
