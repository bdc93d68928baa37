// Package mac implements the two medium-access strategies nodes use to
// decide when to transmit: TDMA, a fixed slot assignment derived from
// a graph colouring of the interference graph, and Listen, a
// listen-before-transmit scheme with an exponentially-windowed
// backoff. Both share the same Protocol contract, a variant of two
// flavours rather than a class hierarchy — a node's driver talks only
// to the interface, never to a concrete protocol type.
package mac

// Batch is a group of nodes scheduled to be processed together at the
// same simulation time. The kernel's event queue coalesces any batches
// that land on equal times, so a protocol is free to return several
// batches for the same instant without worrying about duplicate
// processing.
type Batch struct {
	Time  float64
	Nodes []int
}

// Protocol is the shared contract every medium-access strategy
// implements. A Protocol instance owns all of its scheduling state; a
// fresh Reset puts it back to the state it was in when constructed.
type Protocol interface {
	// InitialSchedule returns the batches to enqueue before the
	// simulation's first tick, given a starting time t0.
	InitialSchedule(t0 float64) []Batch

	// Step advances every node in batch at time t. withMessage reports
	// which nodes currently hold the message being cascaded. It
	// returns the subset of batch that actually transmits this step,
	// and the batches to re-enqueue for those nodes' next turn.
	Step(batch []int, withMessage map[int]bool, t float64) (sent []int, next []Batch)

	// Reset restores the protocol to its just-constructed state.
	Reset()
}

// ListenProtocol is a Protocol whose nodes must first listen for
// channel activity before deciding whether to transmit.
type ListenProtocol interface {
	Protocol

	// WitnessInterval returns the time window [begin, end] a node
	// scheduled in batch should check for incoming transmissions
	// before Step runs, and which of those nodes (the ones currently
	// holding the message) are the ones doing the listening.
	WitnessInterval(batch []int, withMessage map[int]bool, t float64) (begin, end float64, listening []int)

	// ApplyHearing folds the result of the listen check back into
	// per-node hearing state: heard is the subset of candidates that
	// detected channel activity during the witnessed interval.
	ApplyHearing(candidates, heard []int)
}
