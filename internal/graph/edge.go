package graph

import "fmt"

// Edge is an undirected pair of node indices, stored canonically with
// Lo <= Hi. Unlike a sorted two-element slice or a `(min(i,j), max(i,j))`
// map-key tuple built ad hoc at every call site, Edge carries its
// canonical form as part of its type, so every constructor and lookup
// goes through the same normalization path.
type Edge struct {
	Lo, Hi int
}

// NewEdge returns the canonical Edge for the unordered pair (i, j).
func NewEdge(i, j int) Edge {
	if i <= j {
		return Edge{Lo: i, Hi: j}
	}
	return Edge{Lo: j, Hi: i}
}

// Other returns the endpoint of e that is not n. It panics if n is not
// one of e's endpoints, since that indicates a caller bug rather than
// a recoverable condition.
func (e Edge) Other(n int) int {
	switch n {
	case e.Lo:
		return e.Hi
	case e.Hi:
		return e.Lo
	default:
		panic(fmt.Sprintf("graph: node %d is not an endpoint of edge %v", n, e))
	}
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.Lo, e.Hi)
}
