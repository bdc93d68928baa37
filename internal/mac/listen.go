package mac

import (
	"math/rand/v2"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
)

const (
	// listenSlotSeconds is the real-world duration of one listening
	// slot (ConcurentHandler's __slotLength, in seconds).
	listenSlotSeconds = 0.0125

	// durationOfHearing is the hearing counter's reset value: the
	// number of consecutive quiet slots a node must observe before it
	// is cleared to transmit.
	durationOfHearing = 2

	// backoffWindowBits sizes the contention window: offsets are drawn
	// uniformly from 1 to 2^backoffWindowBits slots.
	backoffWindowBits = 12
)

// listenSlotLength is listenSlotSeconds expressed in the simulator's
// dimensionless time unit.
var listenSlotLength = geometry.FromSecToUnit(listenSlotSeconds)

// Listen is a listen-before-transmit protocol: every node tracks a
// hearing counter that resets whenever it detects channel activity and
// decrements on a quiet slot; a node transmits once its counter
// bottoms out, then backs off for a random exponentially-windowed
// interval before listening again. Grounded on ConcurentHandler.
type Listen struct {
	state []int
	rng   *rand.Rand
}

// NewListen returns a Listen protocol over n nodes, drawing backoff
// offsets from rng.
func NewListen(n int, rng *rand.Rand) *Listen {
	l := &Listen{state: make([]int, n), rng: rng}
	l.Reset()
	return l
}

// Reset restores every node's hearing counter to durationOfHearing,
// as if it had just heard activity.
func (l *Listen) Reset() {
	for i := range l.state {
		l.state[i] = durationOfHearing
	}
}

func (l *Listen) randOffset() float64 {
	n := l.rng.IntN(1 << backoffWindowBits)
	return float64(n+1) * listenSlotLength
}

// InitialSchedule gives every node an independent random offset from
// t0, so the first round of listening does not start in lockstep.
func (l *Listen) InitialSchedule(t0 float64) []Batch {
	batches := make([]Batch, len(l.state))
	for i := range l.state {
		batches[i] = Batch{Time: t0 + l.randOffset(), Nodes: []int{i}}
	}
	return batches
}

// WitnessInterval reports the window [begin, end] a batch should be
// checked for channel activity, and which of its nodes are the ones
// listening: those that already hold the message and are therefore
// candidates to transmit. Mirrors
// ConcurentHandler.getNodesWhichWantToHear.
func (l *Listen) WitnessInterval(batch []int, withMessage map[int]bool, t float64) (begin, end float64, listening []int) {
	for _, node := range batch {
		if withMessage[node] {
			listening = append(listening, node)
		}
	}
	return t - listenSlotLength, t, listening
}

// ApplyHearing resets the hearing counter of every heard node back to
// durationOfHearing and decrements every other candidate's counter.
// Mirrors ConcurentHandler.updateStateList.
func (l *Listen) ApplyHearing(candidates, heard []int) {
	heardSet := make(map[int]bool, len(heard))
	for _, n := range heard {
		heardSet[n] = true
	}
	for _, node := range candidates {
		if heardSet[node] {
			l.state[node] = durationOfHearing
		} else {
			l.state[node]--
		}
	}
}

// Step transmits every candidate (a node already holding the message)
// whose hearing counter has bottomed out, resetting its counter and
// rescheduling it after a random backoff; a candidate that is not yet
// clear to send is retried after one slot. A node with no message yet
// is simply rescheduled after a random offset. Mirrors
// ConcurentHandler.processNodes.
func (l *Listen) Step(batch []int, withMessage map[int]bool, t float64) (sent []int, next []Batch) {
	for _, node := range batch {
		if !withMessage[node] {
			next = append(next, Batch{Time: t + l.randOffset(), Nodes: []int{node}})
			continue
		}
		if l.state[node] == 0 {
			sent = append(sent, node)
			l.state[node] = durationOfHearing
			next = append(next, Batch{Time: t + l.randOffset(), Nodes: []int{node}})
		} else {
			next = append(next, Batch{Time: t + listenSlotLength, Nodes: []int{node}})
		}
	}
	return sent, next
}
