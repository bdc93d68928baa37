// Package interference builds the conflict oracle: given a deployment
// and its communication graph, it finds the interference radius R and,
// for every communication edge, precomputes the time offsets at which
// a third node's transmission collides with that edge's transmission.
package interference

import (
	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
)

// Entry is one interferer's precomputed conflict window against a
// single communication edge, in both directions of travel along that
// edge.
type Entry struct {
	Node int

	// Forward is the conflict interval to test when the edge's sender
	// is the Lo endpoint (transmitting toward Hi).
	Forward *geometry.Interval

	// Reverse is the conflict interval to test when the edge's sender
	// is the Hi endpoint (transmitting toward Lo).
	Reverse *geometry.Interval
}

// Incidence holds every node whose transmissions can collide with a
// given communication edge. SelfEntry is the edge's own self-check
// against a too-recent send by whichever node actually receives a
// given transmission along the edge — its identity is query-time
// dependent (the receiver varies by direction) so its Node field is a
// placeholder the caller overrides, and both directions test the same
// forward interval. Carried as a named field instead of index 0 of a
// slice: the reference implementation special-cases the first entry of
// its per-edge interval list, which a fixed index silently relies on
// every caller remembering.
type Incidence struct {
	SelfEntry Entry
	Near      []Entry
}

// Table is the complete conflict oracle for a deployment: the
// interference radius and, per communication edge, the set of nodes
// whose sends must be checked for a collision.
type Table struct {
	Radius          float64
	MessageDuration float64

	incidences map[graph.Edge]Incidence
}

// BuildTable computes the conflict window for every edge of comm,
// including every other node within radius of the edge's line
// segment. Mirrors ConflictHandler.constuctIncidenceVertexesGraph.
func BuildTable(points []geometry.Point, comm *graph.Communication, radius, messageDuration float64) *Table {
	t := &Table{
		Radius:          radius,
		MessageDuration: messageDuration,
		incidences:      make(map[graph.Edge]Incidence),
	}

	for i := 0; i < comm.Len(); i++ {
		for _, j := range comm.Neighbors(i) {
			if i > j {
				continue
			}
			e := graph.Edge{Lo: i, Hi: j}
			ps, pg := points[e.Lo], points[e.Hi]

			selfFwd, _ := ConflictInterval(ps, pg, pg, radius, messageDuration)
			inc := Incidence{
				SelfEntry: Entry{Node: e.Lo, Forward: selfFwd, Reverse: selfFwd},
			}

			for k := 0; k < len(points); k++ {
				if k == e.Lo || k == e.Hi {
					continue
				}
				if geometry.DistLineSegment(points[k], ps, pg) > radius {
					continue
				}
				fwd, rev := ConflictInterval(ps, pg, points[k], radius, messageDuration)
				inc.Near = append(inc.Near, Entry{Node: k, Forward: fwd, Reverse: rev})
			}

			t.incidences[e] = inc
		}
	}

	return t
}

// Incidence returns the precomputed incidence set for e, and whether
// e is a known communication edge.
func (t *Table) Incidence(e graph.Edge) (Incidence, bool) {
	inc, ok := t.incidences[e]
	return inc, ok
}

// ConflictIndexes returns every node whose sends must be checked
// against a transmission along e, including the self-entry. receiver
// is the node actually receiving this transmission along e and always
// takes the first slot, overriding the table's placeholder self-entry
// node the same way every caller of ConflictHandler.getConflictIndexes
// immediately does (e.g. haveIncomingMessages's "V_i_per[0] =
// iNode"). Mirrors ConflictHandler.getConflictIndexes.
func (t *Table) ConflictIndexes(e graph.Edge, receiver int) []int {
	inc, ok := t.incidences[e]
	if !ok {
		return nil
	}
	indexes := make([]int, 0, len(inc.Near)+1)
	indexes = append(indexes, receiver)
	for _, n := range inc.Near {
		indexes = append(indexes, n.Node)
	}
	return indexes
}
