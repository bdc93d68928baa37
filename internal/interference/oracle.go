package interference

import (
	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
)

// ConflictInterval computes the window of relative arrival times, in
// units of R (the interference radius), at which a transmission from
// pi collides with a message sent along the segment ps->pg. It
// returns two intervals: fwd applies when the edge's sender is ps
// (travelling toward pg), rev applies when the sender is pg
// (travelling toward ps). Either may be nil if the corresponding
// window is empty.
//
// Mirrors ConflictHandler.findConfidenceInterval, substituting the
// line-segment/circle parametrization and interpolation from
// internal/geometry for their Python equivalents.
func ConflictInterval(ps, pg, pi Point, radius, messageDuration float64) (fwd, rev *geometry.Interval) {
	pr0 := geometry.DistLineSegmentParam(pi, ps, pg)

	t1, t2, ok := geometry.LineSegmentCircleParams(pi, radius, ps, pg)
	if !ok {
		return nil, nil
	}

	prA := max0(t1)
	prB := min1(t2)
	prC := geometry.Clamp(pr0, 0, 1)

	distSG := geometry.Dist(ps, pg)
	tSG := distSG / radius

	tSA := prA * tSG
	tSB := prB * tSG
	tSC := prC * tSG

	pc := geometry.Interpolate(ps, pg, prC)
	tIC := geometry.Dist(pi, pc) / radius

	pa := geometry.Interpolate(ps, pg, prA)
	tIA := geometry.Dist(pi, pa) / radius

	pb := geometry.Interpolate(ps, pg, prB)
	tIB := geometry.Dist(pi, pb) / radius

	td := messageDuration

	dtIA := minOf(tSC-tIC-td, tSA-tIA-td)
	dtIB := maxOf(tSB-tIB+td, tSC-tIC+td)

	dtIBRev := tSG - maxOf(tSC+tIC+td, tSB+tIB+td)
	dtIARev := tSG - minOf(tSC+tIC-td, tSA+tIA-td)

	return geometry.NewInterval(dtIA, dtIB), geometry.NewInterval(dtIBRev, dtIARev)
}

// Point is an alias kept local to this package's signatures so callers
// read ConflictInterval(ps, pg, pi geometry.Point, ...) without a
// package-qualified parameter list at every call site.
type Point = geometry.Point

func max0(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func min1(v float64) float64 {
	if v < 1 {
		return v
	}
	return 1
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CheckConflict reports whether a transmission at tInterferer collides
// with a send at tSend, given the conflict interval for that direction
// of the edge. Mirrors ConflictHandler.findConflict3.
func CheckConflict(confInterval *geometry.Interval, tSend, tInterferer float64) bool {
	return geometry.InInterval(tInterferer-tSend, confInterval)
}

// directionInterval picks the Forward or Reverse interval of an Entry
// depending on whether the edge's sender is its Lo (Forward) or Hi
// (Reverse) endpoint.
func directionInterval(e Entry, senderIsLo bool) *geometry.Interval {
	if senderIsLo {
		return e.Forward
	}
	return e.Reverse
}

// FilterSchedulableSends returns the subset of sendTimes (candidate
// transmission instants of the sender s along edge (lo=min(s,g), hi=max(s,
// g))) that do not collide with any recorded transmission of any
// interferer in interfererHistory. interfererHistory must contain an
// entry for every node returned by ConflictIndexes(edge, g) — in
// particular, the self-entry's history is looked up under g itself
// (the actual receiver), never under the table's placeholder
// SelfEntry.Node, the same override ConflictHandler.findSheduleConflict2
// applies independently of getConflictIndexes via its own "V_i_per[0]
// = INodeG".
//
// Mirrors ConflictHandler.findSheduleConflict2.
func (t *Table) FilterSchedulableSends(s, g int, sendTimes []float64, interfererHistory map[int][]float64) []float64 {
	lo, hi := s, g
	if lo > hi {
		lo, hi = hi, lo
	}
	senderIsLo := s == lo

	inc, ok := t.incidences[graph.Edge{Lo: lo, Hi: hi}]
	if !ok {
		return sendTimes
	}

	schedulable := make([]float64, 0, len(sendTimes))
	for _, tSend := range sendTimes {
		conflicted := collides(inc.SelfEntry, senderIsLo, tSend, interfererHistory[g])
		for _, entry := range inc.Near {
			if conflicted {
				break
			}
			conflicted = collides(entry, senderIsLo, tSend, interfererHistory[entry.Node])
		}
		if !conflicted {
			schedulable = append(schedulable, tSend)
		}
	}
	return schedulable
}

// collides reports whether tSend conflicts with any recorded
// transmission in interfererTimes, under entry's conflict interval for
// the given send direction.
func collides(entry Entry, senderIsLo bool, tSend float64, interfererTimes []float64) bool {
	confInterval := directionInterval(entry, senderIsLo)
	for _, tInterferer := range interfererTimes {
		if CheckConflict(confInterval, tSend, tInterferer) {
			return true
		}
	}
	return false
}
