package graph_test

import (
	"testing"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
)

func TestNewEdgeCanonical(t *testing.T) {
	t.Parallel()

	if e := graph.NewEdge(3, 1); e != (graph.Edge{Lo: 1, Hi: 3}) {
		t.Errorf("NewEdge(3, 1) = %v, want {1 3}", e)
	}
	if e := graph.NewEdge(1, 3); e != (graph.Edge{Lo: 1, Hi: 3}) {
		t.Errorf("NewEdge(1, 3) = %v, want {1 3}", e)
	}
}

func TestEdgeOther(t *testing.T) {
	t.Parallel()

	e := graph.NewEdge(2, 7)
	if got := e.Other(2); got != 7 {
		t.Errorf("Other(2) = %d, want 7", got)
	}
	if got := e.Other(7); got != 2 {
		t.Errorf("Other(7) = %d, want 2", got)
	}
}

func TestEdgeOtherPanicsOnForeignNode(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a node not on the edge")
		}
	}()
	graph.NewEdge(2, 7).Other(99)
}

func TestBuildCommunicationThreshold(t *testing.T) {
	t.Parallel()

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 100, Y: 0},
	}

	// A deterministic stand-in probability model: closer pairs score
	// higher, matching the shape (but not the formula) of P1/P2.
	probFn := func(d, f float64) float64 {
		if d == 0 {
			return 1
		}
		return 1 / d
	}

	c := graph.BuildCommunication(points, 40, 0.5, probFn)

	if c.Degree(0) != 1 {
		t.Errorf("node 0 degree = %d, want 1 (only node 1 is within reliability)", c.Degree(0))
	}
	if p, ok := c.Probability(graph.NewEdge(0, 1)); !ok || p <= 0.5 {
		t.Errorf("Probability(0,1) = %v, %v; want >0.5, true", p, ok)
	}
	if _, ok := c.Probability(graph.NewEdge(0, 2)); ok {
		t.Error("edge (0,2) should not survive the reliability threshold")
	}
}

func TestBuildInterferenceDistanceThreshold(t *testing.T) {
	t.Parallel()

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 10, Y: 0},
	}

	g := graph.BuildInterference(points, 5)

	if g.Degree(0) != 1 {
		t.Errorf("node 0 degree = %d, want 1", g.Degree(0))
	}
	if g.Degree(2) != 0 {
		t.Errorf("node 2 degree = %d, want 0 (outside interference radius of all other nodes)", g.Degree(2))
	}
	if g.MaxDegree() != 1 {
		t.Errorf("MaxDegree() = %d, want 1", g.MaxDegree())
	}
}
