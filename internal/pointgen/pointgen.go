// Package pointgen places nodes on the plane. It is an external
// collaborator, not part of the simulator's core: the kernel and
// conflict oracle operate on whatever []geometry.Point a generator
// hands them and never care how those positions were chosen.
package pointgen

import (
	"math"
	"math/rand/v2"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
)

// Type selects a node placement strategy (spec.md's pointGenType).
type Type int

const (
	// Uniform scatters nodes uniformly at random over the rectangle.
	Uniform Type = 0
	// Grid places nodes on a regular lattice spaced 1/sqrt(rho) apart.
	Grid Type = 1
	// Sobol is a quasi-random low-discrepancy placement. The reference
	// implementation draws this from scipy's Sobol engine; lacking a
	// vendored direction-number table, it is approximated here as
	// Halton(2, 3) — see DESIGN.md.
	Sobol Type = 2
	// Halton is a quasi-random low-discrepancy placement using the
	// van der Corput sequence in bases 2 and 3.
	Halton Type = 3
)

// Generate returns the node positions for a width x height rectangle
// centered on the origin, at density rho, using the strategy named by
// t. Mirrors PointsGenerator.
func Generate(seed uint64, width, height, rho float64, t Type) []geometry.Point {
	area := width * height
	nSample := int(area * rho)

	switch t {
	case Uniform:
		return uniform(seed, width, height, nSample)
	case Grid:
		return grid(width, height, rho)
	case Sobol, Halton:
		return halton(width, height, nSample)
	default:
		return nil
	}
}

func uniform(seed uint64, width, height float64, n int) []geometry.Point {
	rng := rand.New(rand.NewPCG(seed, seed))
	points := make([]geometry.Point, n)
	for i := range points {
		points[i] = geometry.Point{
			X: width*rng.Float64() - width/2,
			Y: height*rng.Float64() - height/2,
		}
	}
	return points
}

func grid(width, height, rho float64) []geometry.Point {
	d := 1 / math.Sqrt(rho)
	x0 := -math.Floor(width/2/d) * d
	y0 := math.Floor(height/2/d) * d

	var points []geometry.Point
	rows := int(math.Ceil(height / d))
	cols := int(math.Ceil(width / d))
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			points = append(points, geometry.Point{
				X: x0 + float64(i)*d,
				Y: y0 - float64(j)*d,
			})
		}
	}
	return points
}

func halton(width, height float64, n int) []geometry.Point {
	points := make([]geometry.Point, n)
	for i := range points {
		// Indices start at 1: van der Corput of 0 is 0 in every base,
		// which would stack every sequence's first point at the
		// rectangle's corner.
		u := vanDerCorput(i+1, 2)
		v := vanDerCorput(i+1, 3)
		points[i] = geometry.Point{
			X: u*width - width/2,
			Y: v*height - height/2,
		}
	}
	return points
}

// vanDerCorput returns the radical-inverse of n in the given base, the
// low-discrepancy scalar sequence the Halton placement is built from.
func vanDerCorput(n, base int) float64 {
	result, f := 0.0, 1.0
	for n > 0 {
		f /= float64(base)
		result += f * float64(n%base)
		n /= base
	}
	return result
}
