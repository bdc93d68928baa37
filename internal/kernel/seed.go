package kernel

import "github.com/Sirikiddo/RandClusterModel/internal/geometry"

// SeedMessageHolders partitions points by their X coordinate within a
// width-wide rectangle centered at centerX: nodes within margin of the
// left edge start the run holding the message, nodes within margin of
// the right edge are the delivery targets. The two bands overlap, and
// a node can be both, only when margin exceeds 0.5. Mirrors
// NaiveWavePropagationSim.initNodesWithMessage called with
// fractionLeft == fractionRight == margin.
func SeedMessageHolders(points []geometry.Point, width, centerX, margin float64) (withMessage, targets []int) {
	rightEdge := centerX - width/2 + width*margin
	leftEdge := centerX + width/2 - width*margin

	for i, p := range points {
		if p.X < rightEdge {
			withMessage = append(withMessage, i)
		}
		if p.X > leftEdge {
			targets = append(targets, i)
		}
	}
	return withMessage, targets
}
