package geometry_test

import (
	"math"
	"testing"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
)

func TestInterpolateEndpoints(t *testing.T) {
	t.Parallel()

	p0 := geometry.Point{X: 1, Y: 2}
	p1 := geometry.Point{X: 5, Y: -4}

	if got := geometry.Interpolate(p0, p1, 0); got != p0 {
		t.Errorf("Interpolate(p0, p1, 0) = %v, want %v", got, p0)
	}
	if got := geometry.Interpolate(p0, p1, 1); got != p1 {
		t.Errorf("Interpolate(p0, p1, 1) = %v, want %v", got, p1)
	}
}

func TestDistLineSegmentDegenerate(t *testing.T) {
	t.Parallel()

	a := geometry.Point{X: 3, Y: 4}
	p := geometry.Point{X: 0, Y: 0}

	got := geometry.DistLineSegment(p, a, a)
	want := geometry.Dist(p, a)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DistLineSegment with zero-length segment = %v, want %v", got, want)
	}
}

func TestDistLineSegmentEndpointClamp(t *testing.T) {
	t.Parallel()

	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}

	tests := []struct {
		name string
		p    geometry.Point
		want float64
	}{
		{"before a", geometry.Point{X: -5, Y: 0}, 5},
		{"past b", geometry.Point{X: 15, Y: 0}, 5},
		{"perpendicular mid", geometry.Point{X: 5, Y: 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := geometry.DistLineSegment(tt.p, a, b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistLineSegment(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestLineSegmentCircleParamsIntersectsAtRadius(t *testing.T) {
	t.Parallel()

	center := geometry.Point{X: 0, Y: 0}
	a := geometry.Point{X: -10, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	r := 3.0

	t1, t2, ok := geometry.LineSegmentCircleParams(center, r, a, b)
	if !ok {
		t.Fatal("expected intersection, got none")
	}

	p1 := geometry.Interpolate(a, b, t1)
	p2 := geometry.Interpolate(a, b, t2)

	if math.Abs(geometry.Dist(center, p1)-r) > 1e-6 {
		t.Errorf("point at t1 = %v is distance %v from center, want %v", p1, geometry.Dist(center, p1), r)
	}
	if math.Abs(geometry.Dist(center, p2)-r) > 1e-6 {
		t.Errorf("point at t2 = %v is distance %v from center, want %v", p2, geometry.Dist(center, p2), r)
	}
}

func TestLineSegmentCircleParamsNoIntersection(t *testing.T) {
	t.Parallel()

	center := geometry.Point{X: 100, Y: 100}
	a := geometry.Point{X: -10, Y: 0}
	b := geometry.Point{X: 10, Y: 0}

	if _, _, ok := geometry.LineSegmentCircleParams(center, 1, a, b); ok {
		t.Error("expected no intersection for a far-away circle")
	}
}

func TestLineSegmentCircleParamsDegenerateSegment(t *testing.T) {
	t.Parallel()

	a := geometry.Point{X: 1, Y: 1}
	if _, _, ok := geometry.LineSegmentCircleParams(geometry.Point{}, 5, a, a); ok {
		t.Error("expected no intersection for a zero-length segment")
	}
}

func TestInIntervalEmpty(t *testing.T) {
	t.Parallel()

	if geometry.InInterval(0, nil) {
		t.Error("InInterval on an empty interval must return false")
	}
}

func TestNewIntervalOrdering(t *testing.T) {
	t.Parallel()

	if iv := geometry.NewInterval(2, 1); iv != nil {
		t.Errorf("NewInterval(2, 1) = %v, want nil (lo > hi is empty)", iv)
	}
	if iv := geometry.NewInterval(1, 2); iv == nil || iv.Lo != 1 || iv.Hi != 2 {
		t.Errorf("NewInterval(1, 2) = %v, want {1 2}", iv)
	}
}

func TestP1MonotonicDecreasing(t *testing.T) {
	t.Parallel()

	f := 40.0
	p1 := geometry.P1(1, f)
	p5 := geometry.P1(5, f)
	p10 := geometry.P1(10, f)

	if !(p1 > p5 && p5 > p10) {
		t.Errorf("P1 not strictly decreasing: P1(1,%v)=%v P1(5,%v)=%v P1(10,%v)=%v", f, p1, f, p5, f, p10)
	}
}

func TestProbabilityFuncTypeResolveUnknown(t *testing.T) {
	t.Parallel()

	if _, err := geometry.ProbabilityFuncType(99).Resolve(); err == nil {
		t.Error("expected error for unknown probability function type")
	}
}

func TestFromUnitSecRoundTrip(t *testing.T) {
	t.Parallel()

	// The reference constants are independently-rounded reciprocals, not
	// exact inverses, so the round trip only needs to be approximate.
	sec := 1.0
	unit := geometry.FromSecToUnit(sec)
	back := geometry.FromUnitToSec(unit)
	if math.Abs(back-sec) > 1e-3 {
		t.Errorf("FromUnitToSec(FromSecToUnit(%v)) = %v, want ~%v", sec, back, sec)
	}
}
