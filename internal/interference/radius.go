package interference

import (
	"sort"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
)

// maxSearchRadius bounds the binary search for the interference radius.
// The reference three-pass scan starts at 10 and never grows past it
// for any frequency the deployment settings allow, so 10 is kept here
// as the search upper bound too.
const maxSearchRadius = 10.0

// interferenceThreshold is the reception probability below which a
// transmitter is considered outside another node's interference range.
const interferenceThreshold = 0.01

// MessageDurationSeconds is the real-world airtime of one message,
// mirrors ConflictHandler's __messageLength.
const MessageDurationSeconds = 0.02

// MessageDuration is MessageDurationSeconds expressed in the
// simulator's dimensionless time unit, the value BuildTable expects.
func MessageDuration() float64 {
	return geometry.FromSecToUnit(MessageDurationSeconds)
}

// FindInterferenceRadius returns the smallest r in (0, maxSearchRadius]
// at which probFn(r, f) drops to interferenceThreshold or below. If
// probFn stays above the threshold over the whole bracket,
// maxSearchRadius itself is returned.
//
// The reference implementation finds this by a three-pass linear scan,
// narrowing the search bracket by a factor of ten on each pass
// (precision = 3). probFn is monotonically non-increasing in r for
// every f the deployment settings permit, so the same root is reached
// in O(log) steps by binary search instead, over a grid of 2^20 points
// (a resolution of about 1e-5) rather than the fixed three decimal
// digits the original scan produces.
func FindInterferenceRadius(f float64, probFn geometry.ProbabilityFunc) float64 {
	lo, hi := 0.0, maxSearchRadius

	// sort.Search finds the smallest index i in [0, n) for which f(i)
	// is true, assuming f is false then true; probFn(r, f) is
	// decreasing in r so "has dropped to the threshold" is exactly
	// such a monotone predicate, sampled at fixed-point resolution
	// over the search bracket.
	const steps = 1 << 20
	i := sort.Search(steps, func(i int) bool {
		r := lo + (hi-lo)*float64(i)/float64(steps-1)
		return probFn(r, f) <= interferenceThreshold
	})
	if i >= steps {
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(steps-1)
}
