package mac_test

import (
	"math/rand/v2"
	"testing"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
	"github.com/Sirikiddo/RandClusterModel/internal/mac"
)

// chainPoints returns n collinear points one unit apart, so a small
// interference radius produces a simple path graph 0-1-2-...-(n-1).
func chainPoints(n int) []geometry.Point {
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Point{X: float64(i), Y: 0}
	}
	return pts
}

func TestTDMAColouringNeverSharesAdjacentColour(t *testing.T) {
	t.Parallel()

	ig := graph.BuildInterference(chainPoints(4), 1.5)
	tdma := mac.NewTDMA(ig)

	for i := 0; i < 3; i++ {
		if tdma.Colour(i) == tdma.Colour(i+1) {
			t.Errorf("adjacent nodes %d and %d share colour %d", i, i+1, tdma.Colour(i))
		}
	}
}

func TestTDMAStepSendsOnlyNodesWithMessage(t *testing.T) {
	t.Parallel()

	ig := graph.BuildInterference(chainPoints(4), 1.5)
	tdma := mac.NewTDMA(ig)

	withMessage := map[int]bool{0: true, 2: false}
	sent, next := tdma.Step([]int{0, 2}, withMessage, 10)

	if len(sent) != 1 || sent[0] != 0 {
		t.Errorf("sent = %v, want [0]", sent)
	}
	if len(next) != 1 || next[0].Time <= 10 {
		t.Errorf("next = %v, want one batch scheduled after t=10", next)
	}
}

func TestListenStateTransitionsToSendAfterQuietSlots(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	l := mac.NewListen(2, rng)

	withMessage := map[int]bool{0: true}

	// Two consecutive quiet hearing rounds should exhaust the counter
	// (durationOfHearing == 2) and clear node 0 to send.
	l.ApplyHearing([]int{0}, nil)
	sent, _ := l.Step([]int{0}, withMessage, 1)
	if len(sent) != 0 {
		t.Fatalf("node should not yet be clear to send after one quiet round, sent = %v", sent)
	}

	l.ApplyHearing([]int{0}, nil)
	sent, _ = l.Step([]int{0}, withMessage, 2)
	if len(sent) != 1 || sent[0] != 0 {
		t.Errorf("node should be clear to send after two quiet rounds, sent = %v", sent)
	}
}

func TestListenStateResetsOnHearing(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	l := mac.NewListen(1, rng)

	l.ApplyHearing([]int{0}, nil)
	l.ApplyHearing([]int{0}, []int{0}) // heard activity: counter resets
	sent, _ := l.Step([]int{0}, map[int]bool{0: true}, 1)
	if len(sent) != 0 {
		t.Errorf("node should not send right after hearing activity, sent = %v", sent)
	}
}

func TestListenWitnessIntervalOnlyListensNodesWithMessage(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	l := mac.NewListen(3, rng)

	withMessage := map[int]bool{0: true, 1: false}
	begin, end, listening := l.WitnessInterval([]int{0, 1}, withMessage, 5)

	if len(listening) != 1 || listening[0] != 0 {
		t.Errorf("listening = %v, want [0]", listening)
	}
	if end != 5 || begin >= end {
		t.Errorf("window = [%v, %v], want end=5 and begin<end", begin, end)
	}
}
