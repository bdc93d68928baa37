package mac

import "github.com/Sirikiddo/RandClusterModel/internal/graph"

// slotLength is the duration of one TDMA slot, in dimensionless
// simulation time units (SheduleHandler's "time in dimensionless
// quantities").
const slotLength = 1.0

// TDMA assigns every node a colour from a greedy colouring of the
// interference graph, then dispatches one batch per colour, one slot
// apart, repeating every full cycle. Two nodes sharing a colour are
// guaranteed non-adjacent in the interference graph and so never
// transmit in the same slot.
type TDMA struct {
	colour    []int
	byColour  [][]int
	maxColour int
}

// NewTDMA colours interferenceGraph greedily, in node-index order, and
// groups nodes by the resulting colour. Mirrors
// SheduleHandler.graphColouring + sortNodesByColour.
func NewTDMA(interferenceGraph *graph.Interference) *TDMA {
	n := interferenceGraph.Len()
	colour := make([]int, n)
	for i := range colour {
		colour[i] = -1
	}
	if n > 0 {
		colour[0] = 0
	}

	available := make([]bool, n)
	for u := 1; u < n; u++ {
		for _, v := range interferenceGraph.Neighbors(u) {
			if colour[v] != -1 {
				available[colour[v]] = true
			}
		}

		c := 0
		for c < n && available[c] {
			c++
		}
		colour[u] = c

		for _, v := range interferenceGraph.Neighbors(u) {
			if colour[v] != -1 {
				available[colour[v]] = false
			}
		}
	}

	maxColour := 0
	for _, c := range colour {
		if c > maxColour {
			maxColour = c
		}
	}

	byColour := make([][]int, maxColour+1)
	for node, c := range colour {
		byColour[c] = append(byColour[c], node)
	}

	return &TDMA{colour: colour, byColour: byColour, maxColour: maxColour}
}

// Colour returns the slot colour assigned to node.
func (t *TDMA) Colour(node int) int {
	return t.colour[node]
}

// InitialSchedule returns one batch per colour, starting at t0 and
// advancing by one slotLength per colour.
func (t *TDMA) InitialSchedule(t0 float64) []Batch {
	batches := make([]Batch, 0, len(t.byColour))
	time := t0
	for _, nodes := range t.byColour {
		batches = append(batches, Batch{Time: time, Nodes: nodes})
		time += slotLength
	}
	return batches
}

// Step sends every node in batch that currently holds the message,
// and re-enqueues the whole batch one full colouring cycle later.
func (t *TDMA) Step(batch []int, withMessage map[int]bool, tCurrent float64) (sent []int, next []Batch) {
	for _, node := range batch {
		if withMessage[node] {
			sent = append(sent, node)
		}
	}
	nextTime := tCurrent + float64(t.maxColour+1)*slotLength
	next = []Batch{{Time: nextTime, Nodes: batch}}
	return sent, next
}

// Reset is a no-op: the colouring is a static property of the
// interference graph, fixed at construction, and TDMA carries no other
// per-run state.
func (t *TDMA) Reset() {}
