// Package graph builds the two node graphs the simulator reasons about:
// the communication graph G_c (which pairs of nodes can exchange a
// message at all, and with what probability) and the interference
// graph G_i (which pairs of nodes are close enough to need
// graph-colouring separation under TDMA). Both are built once, from the
// same deployment, and never mutated afterward.
package graph

import "github.com/Sirikiddo/RandClusterModel/internal/geometry"

// Adjacency is an undirected graph over node indices [0, N). Neighbors
// lists are built once at construction and never resized afterward.
type Adjacency struct {
	neighbors [][]int
}

// NewAdjacency returns an empty Adjacency over n nodes.
func NewAdjacency(n int) *Adjacency {
	return &Adjacency{neighbors: make([][]int, n)}
}

// Len returns the number of nodes the adjacency was built over.
func (a *Adjacency) Len() int {
	return len(a.neighbors)
}

// Neighbors returns the neighbor list of node i. Callers must not
// mutate the returned slice.
func (a *Adjacency) Neighbors(i int) []int {
	return a.neighbors[i]
}

// Degree returns the number of neighbors of node i.
func (a *Adjacency) Degree(i int) int {
	return len(a.neighbors[i])
}

// MaxDegree returns the largest Degree across all nodes.
func (a *Adjacency) MaxDegree() int {
	max := 0
	for i := range a.neighbors {
		if d := len(a.neighbors[i]); d > max {
			max = d
		}
	}
	return max
}

func (a *Adjacency) addEdge(i, j int) {
	a.neighbors[i] = append(a.neighbors[i], j)
	a.neighbors[j] = append(a.neighbors[j], i)
}

// Communication is G_c: the pairs of nodes whose reception probability
// exceeds the configured reliability threshold, together with the
// probability value on each surviving edge.
type Communication struct {
	*Adjacency
	prob map[Edge]float64
}

// Probability returns the reception probability stored for e. The
// second return value is false if e is not an edge of the graph.
func (c *Communication) Probability(e Edge) (float64, bool) {
	p, ok := c.prob[e]
	return p, ok
}

// BuildCommunication constructs G_c over points using probFn(dist, f)
// as the reception probability model; an edge survives when its
// probability exceeds reliability. Mirrors EdgeGenerator in the
// reference deployment builder, restricted to the edges a caller
// actually needs kept (the probability matrix itself is not
// materialized — only the sparse per-edge map).
func BuildCommunication(points []geometry.Point, f, reliability float64, probFn geometry.ProbabilityFunc) *Communication {
	c := &Communication{
		Adjacency: NewAdjacency(len(points)),
		prob:      make(map[Edge]float64),
	}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := geometry.Dist(points[i], points[j])
			p := probFn(d, f)
			if p > reliability {
				e := NewEdge(i, j)
				c.prob[e] = p
				c.addEdge(i, j)
			}
		}
	}
	return c
}

// Interference is G_i: the pairs of nodes whose raw Euclidean distance
// is below the interference radius, and therefore may not transmit
// in the same TDMA slot.
type Interference struct {
	*Adjacency
}

// BuildInterference constructs G_i over points using a plain distance
// threshold (no reception-probability model — interference is a
// geometric, not a probabilistic, relation). Mirrors
// SheduleHandler.produceInterferenceGtaph.
func BuildInterference(points []geometry.Point, radius float64) *Interference {
	g := &Interference{Adjacency: NewAdjacency(len(points))}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if geometry.Dist(points[i], points[j]) < radius {
				g.addEdge(i, j)
			}
		}
	}
	return g
}
