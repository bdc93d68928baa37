// Package commands implements the cascadectl inspector commands: a
// cobra command tree that reads from a completed internal/runner.Run
// held in package state, rendered as either a table or JSON.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sirikiddo/RandClusterModel/internal/kernel"
	"github.com/Sirikiddo/RandClusterModel/internal/runner"
)

// run is the completed simulation every inspector command reads from.
// It is set once, by SetRun, before the shell starts; commands never
// mutate it.
var run *runner.Run

// outputFormat controls the rendering of node/edge/graph/stats output.
var outputFormat string

// SetRun installs the simulation the inspector commands operate on.
// Called once by cmd/cascadectl/main.go after internal/runner.Execute
// returns.
func SetRun(r *runner.Run) {
	run = r
}

// InspectorCmd builds the cobra command tree shared between a
// one-shot cascadectl invocation and the interactive shell: graph,
// node, edge, stats, history, and version.
func InspectorCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cascadectl",
		Short:         "Inspect a completed cascade simulation run",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format: table, json")

	root.AddCommand(graphCmd())
	root.AddCommand(nodeCmd())
	root.AddCommand(edgeCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(versionCmd())
	return root
}

// requireRun returns an error if no simulation has been wired in yet.
func requireRun() error {
	if run == nil {
		return fmt.Errorf("no simulation loaded")
	}
	return nil
}

func graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Summarize the communication and interference graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireRun(); err != nil {
				return err
			}
			out, err := formatGraph(graphView{
				Nodes:            run.Comm.Len(),
				CommEdges:        countEdges(run.Comm.Len(), run.Comm.Neighbors),
				InterferenceEdges: countEdges(run.Interference.Len(), run.Interference.Neighbors),
				InterferenceRadius: run.Table.Radius,
			}, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func nodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node <id>",
		Short: "Show one node's position, neighbors, and attempt count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRun(); err != nil {
				return err
			}
			id, err := parseNodeID(args[0], run.Comm.Len())
			if err != nil {
				return err
			}

			view := nodeView{
				ID:          id,
				X:           run.Points[id].X,
				Y:           run.Points[id].Y,
				Neighbors:   run.Comm.Neighbors(id),
				Attempts:    run.Result.Logger.Attempts(id),
				HasMessage:  containsInt(run.Result.WithMessage, id),
				IsTarget:    containsInt(run.Targets, id),
			}

			out, err := formatNode(view, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func edgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edge <from> <to>",
		Short: "Show one directed edge's send and collision counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRun(); err != nil {
				return err
			}
			from, err := parseNodeID(args[0], run.Comm.Len())
			if err != nil {
				return err
			}
			to, err := parseNodeID(args[1], run.Comm.Len())
			if err != nil {
				return err
			}

			stat := run.Result.Logger.EdgeStats(kernel.DirectedEdge{From: from, To: to})
			out, err := formatEdge(edgeView{From: from, To: to, Sent: stat.Sent, Collisions: stat.Collisions}, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the run's overall delivery outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireRun(); err != nil {
				return err
			}
			out, err := formatStats(statsView{
				Nodes:           len(run.Points),
				FinalTime:       run.Result.FinalTime,
				Delivered:       run.Result.Delivered,
				NodesWithMessage: len(run.Result.WithMessage),
				Targets:         len(run.Targets),
			}, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "List every time a node transmitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRun(); err != nil {
				return err
			}
			id, err := parseNodeID(args[0], run.Comm.Len())
			if err != nil {
				return err
			}

			out, err := formatHistory(id, run.Result.History.All(id), outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func countEdges(n int, neighbors func(int) []int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += len(neighbors(i))
	}
	return total / 2
}

func parseNodeID(s string, n int) (int, error) {
	var id int
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid node id %q: %w", s, err)
	}
	if id < 0 || id >= n {
		return 0, fmt.Errorf("node id %d out of range [0, %d)", id, n)
	}
	return id, nil
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
