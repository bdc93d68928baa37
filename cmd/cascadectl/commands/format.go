package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// errUnsupportedFormat is returned when the requested output format is not supported.
var errUnsupportedFormat = errors.New("unsupported output format")

type graphView struct {
	Nodes              int     `json:"nodes"`
	CommEdges          int     `json:"communication_edges"`
	InterferenceEdges  int     `json:"interference_edges"`
	InterferenceRadius float64 `json:"interference_radius"`
}

type nodeView struct {
	ID         int     `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Neighbors  []int   `json:"neighbors"`
	Attempts   int     `json:"attempts"`
	HasMessage bool    `json:"has_message"`
	IsTarget   bool    `json:"is_target"`
}

type edgeView struct {
	From       int `json:"from"`
	To         int `json:"to"`
	Sent       int `json:"sent"`
	Collisions int `json:"collisions"`
}

type statsView struct {
	Nodes            int     `json:"nodes"`
	FinalTime        float64 `json:"final_time"`
	Delivered        bool    `json:"delivered"`
	NodesWithMessage int     `json:"nodes_with_message"`
	Targets          int     `json:"targets"`
}

func formatGraph(v graphView, format string) (string, error) {
	switch format {
	case formatJSON:
		return toJSON(v)
	case formatTable:
		var buf strings.Builder
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Nodes:\t%d\n", v.Nodes)
		fmt.Fprintf(w, "Communication edges:\t%d\n", v.CommEdges)
		fmt.Fprintf(w, "Interference edges:\t%d\n", v.InterferenceEdges)
		fmt.Fprintf(w, "Interference radius:\t%.4f\n", v.InterferenceRadius)
		return flush(w, &buf)
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func formatNode(v nodeView, format string) (string, error) {
	switch format {
	case formatJSON:
		return toJSON(v)
	case formatTable:
		var buf strings.Builder
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Node:\t%d\n", v.ID)
		fmt.Fprintf(w, "Position:\t(%.4f, %.4f)\n", v.X, v.Y)
		fmt.Fprintf(w, "Neighbors:\t%v\n", v.Neighbors)
		fmt.Fprintf(w, "Attempts:\t%d\n", v.Attempts)
		fmt.Fprintf(w, "Has message:\t%v\n", v.HasMessage)
		fmt.Fprintf(w, "Is target:\t%v\n", v.IsTarget)
		return flush(w, &buf)
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func formatEdge(v edgeView, format string) (string, error) {
	switch format {
	case formatJSON:
		return toJSON(v)
	case formatTable:
		var buf strings.Builder
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Edge:\t%d -> %d\n", v.From, v.To)
		fmt.Fprintf(w, "Sent:\t%d\n", v.Sent)
		fmt.Fprintf(w, "Collisions:\t%d\n", v.Collisions)
		return flush(w, &buf)
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func formatStats(v statsView, format string) (string, error) {
	switch format {
	case formatJSON:
		return toJSON(v)
	case formatTable:
		var buf strings.Builder
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Nodes:\t%d\n", v.Nodes)
		fmt.Fprintf(w, "Final time:\t%.4f\n", v.FinalTime)
		fmt.Fprintf(w, "Delivered:\t%v\n", v.Delivered)
		fmt.Fprintf(w, "Nodes with message:\t%d/%d\n", v.NodesWithMessage, v.Nodes)
		fmt.Fprintf(w, "Targets:\t%d\n", v.Targets)
		return flush(w, &buf)
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func formatHistory(node int, times []float64, format string) (string, error) {
	switch format {
	case formatJSON:
		return toJSON(struct {
			Node  int       `json:"node"`
			Sends []float64 `json:"sends"`
		}{Node: node, Sends: times})
	case formatTable:
		if len(times) == 0 {
			return fmt.Sprintf("node %d never sent", node), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "node %d sent %d times:\n", node, len(times))
		for _, t := range times {
			fmt.Fprintf(&sb, "  %.4f\n", t)
		}
		return strings.TrimRight(sb.String(), "\n"), nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal to JSON: %w", err)
	}
	return string(data), nil
}

func flush(w *tabwriter.Writer, buf *strings.Builder) (string, error) {
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush tabwriter: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
