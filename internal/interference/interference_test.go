package interference_test

import (
	"math"
	"testing"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
	"github.com/Sirikiddo/RandClusterModel/internal/interference"
)

func TestFindInterferenceRadiusMatchesThreshold(t *testing.T) {
	t.Parallel()

	f := 40.0
	r := interference.FindInterferenceRadius(f, geometry.P1)

	p := geometry.P1(r, f)
	if math.Abs(p-0.01) > 1e-3 {
		t.Errorf("P1(FindInterferenceRadius(%v), %v) = %v, want ~0.01", f, f, p)
	}

	// Monotonic decrease either side of the root: above the radius the
	// probability should already be under threshold, below it over.
	if geometry.P1(r-0.5, f) <= 0.01 {
		t.Error("probability below the interference radius should exceed the threshold")
	}
	if geometry.P1(r+0.5, f) > 0.01 {
		t.Error("probability above the interference radius should be at or under the threshold")
	}
}

func TestConflictIntervalSelfEntryNonEmpty(t *testing.T) {
	t.Parallel()

	ps := geometry.Point{X: 0, Y: 0}
	pg := geometry.Point{X: 1, Y: 0}

	fwd, rev := interference.ConflictInterval(ps, pg, pg, 5, 0.01)
	if fwd == nil && rev == nil {
		t.Error("self-entry conflict interval (pi == pg) should not be empty in both directions")
	}
}

func TestBuildTableConflictIndexesIncludesSelf(t *testing.T) {
	t.Parallel()

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0.5, Y: 0.1},
	}

	probFn := func(d, f float64) float64 {
		if d == 0 {
			return 1
		}
		return 1 / d
	}

	comm := graph.BuildCommunication(points, 40, 0.2, probFn)
	radius := 5.0
	table := interference.BuildTable(points, comm, radius, 0.01)

	e := graph.NewEdge(0, 1)
	indexes := table.ConflictIndexes(e, e.Lo)
	if len(indexes) == 0 {
		t.Fatal("expected at least the self entry in ConflictIndexes")
	}
	if indexes[0] != e.Lo {
		t.Errorf("ConflictIndexes(%v, %d)[0] = %d, want %d (the query's receiver)", e, e.Lo, indexes[0], e.Lo)
	}

	indexes = table.ConflictIndexes(e, e.Hi)
	if indexes[0] != e.Hi {
		t.Errorf("ConflictIndexes(%v, %d)[0] = %d, want %d (the query's receiver)", e, e.Hi, indexes[0], e.Hi)
	}
}

func TestFilterSchedulableSendsDropsColliding(t *testing.T) {
	t.Parallel()

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
	}

	probFn := func(d, f float64) float64 {
		if d == 0 {
			return 1
		}
		return 1 / d
	}

	comm := graph.BuildCommunication(points, 40, 0.2, probFn)
	table := interference.BuildTable(points, comm, 5, 0.01)

	sendTimes := []float64{0, 1, 2}
	// A history entry for the receiver (the self entry, always keyed by
	// the query's g argument) at time 0 should knock out a send at time
	// 0, since the self-entry window always contains a zero offset.
	history := map[int][]float64{1: {0}}

	schedulable := table.FilterSchedulableSends(0, 1, sendTimes, history)
	for _, s := range schedulable {
		if s == 0 {
			t.Error("send at t=0 should have been filtered out by the colliding history entry")
		}
	}
}

func TestFilterSchedulableSendsSelfEntryUsesReceiver(t *testing.T) {
	t.Parallel()

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
	}

	probFn := func(d, f float64) float64 {
		if d == 0 {
			return 1
		}
		return 1 / d
	}

	comm := graph.BuildCommunication(points, 40, 0.2, probFn)
	table := interference.BuildTable(points, comm, 5, 0.01)

	// Node 1 (Hi) sends toward node 0 (Lo): senderIsLo is false, so the
	// pre-fix code would have tested the Reverse interval against
	// interfererHistory[e.Hi] (the sender's own history) instead of the
	// receiver's. A history entry keyed by the receiver, node 0, must
	// still knock out the colliding send.
	sendTimes := []float64{0, 1, 2}
	history := map[int][]float64{0: {0}}

	schedulable := table.FilterSchedulableSends(1, 0, sendTimes, history)
	for _, s := range schedulable {
		if s == 0 {
			t.Error("send at t=0 should have been filtered out by the receiver's colliding history entry")
		}
	}
}
