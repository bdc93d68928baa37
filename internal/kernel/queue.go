// Package kernel drives the discrete-event simulation: an event queue
// ordered by time, each node's send history, and the main loop that
// repeatedly pops the next batch of due nodes, runs them through a MAC
// protocol, and checks newly-sent messages against the interference
// oracle for collisions.
package kernel

import "container/heap"

// event is one scheduled batch, as stored in the underlying heap.
type event struct {
	time  float64
	nodes []int
}

// eventHeap is a container/heap.Interface over events ordered by time.
type eventHeap []event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].time < h[j].time }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// EventQueue is a time-ordered queue of node batches to process. Two
// pushes landing on the exact same time are merged into a single pop,
// so the simulation driver sees "every node due at time T" as one
// batch, never several, no matter how many separate Push calls
// produced it. Mirrors TimeModel's PriorityQueue plus its
// same-timestamp merge loop in getNodesToProcess.
type EventQueue struct {
	h eventHeap
}

// NewEventQueue returns an empty EventQueue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.h)
	return q
}

// Push schedules nodes to be processed at time.
func (q *EventQueue) Push(time float64, nodes []int) {
	heap.Push(&q.h, event{time: time, nodes: nodes})
}

// Empty reports whether the queue has no pending events.
func (q *EventQueue) Empty() bool {
	return q.h.Len() == 0
}

// Pop removes and returns the earliest time in the queue together
// with every node batch scheduled at that exact time, merged into one
// slice. It panics if the queue is empty; callers must check Empty
// first.
func (q *EventQueue) Pop() (time float64, nodes []int) {
	first := heap.Pop(&q.h).(event)
	time = first.time
	nodes = append(nodes, first.nodes...)

	for q.h.Len() > 0 && q.h[0].time == time {
		more := heap.Pop(&q.h).(event)
		nodes = append(nodes, more.nodes...)
	}
	return time, nodes
}
