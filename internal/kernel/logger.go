package kernel

import "github.com/Sirikiddo/RandClusterModel/internal/graph"

// DirectedEdge is a transmission direction: a message incoming at To
// from From. Unlike graph.Edge, direction matters here because
// collision/attempt counts are tracked per direction of travel.
type DirectedEdge struct {
	From, To int
}

// EdgeStat accumulates, for one DirectedEdge, how many transmissions
// were observed in total and how many of those collided.
type EdgeStat struct {
	Sent       int
	Collisions int
}

// Logger accumulates run counters: how many times each node attempted
// to process a scheduled batch, and per directed edge how many sends
// were observed versus how many of those collided. Mirrors Logger.py.
type Logger struct {
	attempts []int
	edges    map[DirectedEdge]EdgeStat
}

// NewLogger returns a Logger with one directed edge entry per ordered
// neighbor pair of comm.
func NewLogger(comm *graph.Communication) *Logger {
	l := &Logger{
		attempts: make([]int, comm.Len()),
		edges:    make(map[DirectedEdge]EdgeStat),
	}
	for i := 0; i < comm.Len(); i++ {
		for _, j := range comm.Neighbors(i) {
			l.edges[DirectedEdge{From: i, To: j}] = EdgeStat{}
		}
	}
	return l
}

// AddAttempt records n additional processing attempts for every node
// in nodes.
func (l *Logger) AddAttempt(nodes []int, n int) {
	for _, node := range nodes {
		l.attempts[node] += n
	}
}

// AddObservation records n additional sends and collisions seen on e.
func (l *Logger) AddObservation(e DirectedEdge, sent, collisions int) {
	stat := l.edges[e]
	stat.Sent += sent
	stat.Collisions += collisions
	l.edges[e] = stat
}

// Attempts returns the number of processing attempts recorded for
// node.
func (l *Logger) Attempts(node int) int {
	return l.attempts[node]
}

// EdgeStats returns the accumulated stat for e.
func (l *Logger) EdgeStats(e DirectedEdge) EdgeStat {
	return l.edges[e]
}

// Edges returns every directed edge the logger is tracking.
func (l *Logger) Edges() []DirectedEdge {
	edges := make([]DirectedEdge, 0, len(l.edges))
	for e := range l.edges {
		edges = append(edges, e)
	}
	return edges
}
