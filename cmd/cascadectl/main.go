// Cascadectl -- runs a cascade simulation in-process and opens an
// interactive shell for inspecting the completed deployment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sirikiddo/RandClusterModel/cmd/cascadectl/commands"
	"github.com/Sirikiddo/RandClusterModel/internal/config"
	"github.com/Sirikiddo/RandClusterModel/internal/runner"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// rootCmd builds the cascadectl entry point: load configuration, run
// the simulation cascadesim run would have run, then hand the
// completed runner.Run to the inspector commands and open the shell.
// cascadectl never re-implements the wiring between config and kernel:
// it calls the same internal/runner.Execute that cascadesim run does,
// so both binaries always inspect the same simulation.
func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "cascadectl",
		Short:         "Run and inspect a cascade message delivery simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			run, err := runner.Execute(context.Background(), cfg)
			if err != nil {
				return fmt.Errorf("execute simulation: %w", err)
			}

			commands.SetRun(run)
			return commands.Shell()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}
	return cfg, nil
}
