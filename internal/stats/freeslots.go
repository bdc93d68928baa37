// Package stats derives run-level channel statistics from a completed
// simulation's history, and exports them as Prometheus metrics.
package stats

import "github.com/Sirikiddo/RandClusterModel/internal/geometry"

// listenSlotSeconds mirrors ConcurentHandler's __slotLength (seconds):
// free-slot statistics are measured at the same tick width the listen
// protocol itself uses.
const listenSlotSeconds = 0.0125

var listenSlotLength = geometry.FromSecToUnit(listenSlotSeconds)

// TickCounts returns, for each node, the number of times in
// perNodeHistory[node] (the arrival times of the transmissions the node
// heard from its neighbors) falling in each successive tick of width
// listenSlotLength up to lastTime. Mirrors
// ConcurentHandler.getFreeTicksList.
func TickCounts(perNodeHistory [][]float64, lastTime float64) [][]int {
	ticks := make([][]int, len(perNodeHistory))
	for node, times := range perNodeHistory {
		begin := 0.0
		end := begin + listenSlotLength
		var counts []int
		for begin < lastTime {
			counts = append(counts, countInRange(times, begin, end))
			begin = end
			end += listenSlotLength
		}
		ticks[node] = counts
	}
	return ticks
}

func countInRange(sortedTimes []float64, begin, end float64) int {
	n := 0
	for _, t := range sortedTimes {
		if t >= begin && t < end {
			n++
		}
	}
	return n
}

// EmptyRunProbability returns, for each node's tick-count series, the
// fraction of ticks spent in a "dead" run: each closed maximal run of
// ℓ >= zeroRunFloor consecutive empty ticks contributes
// ℓ-zeroRunFloor+1 (the number of places in it where zeroRunFloor
// empty ticks start); shorter runs contribute nothing (a short gap is
// expected jitter, not channel idleness). Mirrors
// ConcurentHandler.func_cnt.
func EmptyRunProbability(ticks [][]int, zeroRunFloor int) []float64 {
	p := make([]float64, len(ticks))
	for node, series := range ticks {
		if len(series) == 0 {
			continue
		}
		deadTicks := 0
		inZero := false
		begin := 0
		for i, count := range series {
			if count == 0 && !inZero {
				begin = i
				inZero = true
			}
			if count != 0 && inZero {
				inZero = false
				if run := i - begin; run >= zeroRunFloor {
					deadTicks += run - zeroRunFloor + 1
				}
			}
		}
		p[node] = float64(deadTicks) / float64(len(series))
	}
	return p
}
