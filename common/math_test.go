package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const eps = 1e-9

func vecEq(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name             string
		v, min, max, out float64
	}{
		{"below", -2, 0, 1, 0},
		{"inside", 0.5, 0, 1, 0.5},
		{"above", 7, 0, 1, 1},
		{"at_min", 0, 0, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.min, c.max); got != c.out {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.min, c.max, got, c.out)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Fatalf("Lerp(10, 20, 0.5) = %v, want 15", got)
	}
	if got := Lerp(10, 20, 0); got != 10 {
		t.Fatalf("Lerp at t=0 = %v, want 10", got)
	}
	if got := Lerp(10, 20, 1); got != 20 {
		t.Fatalf("Lerp at t=1 = %v, want 20", got)
	}
}

func TestExtractComponent(t *testing.T) {
	cases := []struct {
		name   string
		v, dir cp.Vector
		out    cp.Vector
	}{
		{"along_axis", cp.Vector{X: 3, Y: 4}, cp.Vector{X: 1, Y: 0}, cp.Vector{X: 3, Y: 0}},
		{"unnormalized_dir", cp.Vector{X: 3, Y: 4}, cp.Vector{X: 10, Y: 0}, cp.Vector{X: 3, Y: 0}},
		{"opposed", cp.Vector{X: -2, Y: 0}, cp.Vector{X: 1, Y: 0}, cp.Vector{X: -2, Y: 0}},
		{"zero_dir", cp.Vector{X: 3, Y: 4}, cp.Vector{}, cp.Vector{}},
		{"perpendicular", cp.Vector{X: 0, Y: 5}, cp.Vector{X: 1, Y: 0}, cp.Vector{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractComponent(c.v, c.dir); !vecEq(got, c.out) {
				t.Fatalf("ExtractComponent(%v, %v) = %v, want %v", c.v, c.dir, got, c.out)
			}
		})
	}
}

func TestRemoveComponentLeavesPerpendicular(t *testing.T) {
	v := cp.Vector{X: 3, Y: 4}
	dir := cp.Vector{X: 0, Y: 1}
	got := RemoveComponent(v, dir)
	if !vecEq(got, cp.Vector{X: 3, Y: 0}) {
		t.Fatalf("RemoveComponent = %v, want {3 0}", got)
	}
	if math.Abs(got.Dot(dir)) > eps {
		t.Fatalf("remainder not perpendicular to dir: dot = %v", got.Dot(dir))
	}
}

func TestProjectOntoPlane(t *testing.T) {
	normal := cp.Vector{X: 0, Y: -1}
	v := cp.Vector{X: 5, Y: 3}
	got := ProjectOntoPlane(v, normal)
	if math.Abs(got.Dot(normal)) > eps {
		t.Fatalf("projection retains normal component: %v", got)
	}
	if !vecEq(got, cp.Vector{X: 5, Y: 0}) {
		t.Fatalf("ProjectOntoPlane = %v, want {5 0}", got)
	}

	// a tilted normal keeps the projection tangent to the plane
	slope := cp.Vector{X: 1, Y: -1}.Normalize()
	got = ProjectOntoPlane(cp.Vector{X: 0, Y: 10}, slope)
	if math.Abs(got.Dot(slope)) > eps {
		t.Fatalf("tilted projection not tangent: dot = %v", got.Dot(slope))
	}
}

func TestApproach(t *testing.T) {
	cases := []struct {
		name     string
		v        cp.Vector
		maxDelta float64
		out      cp.Vector
	}{
		{"partial", cp.Vector{X: 10, Y: 0}, 4, cp.Vector{X: 6, Y: 0}},
		{"no_overshoot", cp.Vector{X: 3, Y: 0}, 100, cp.Vector{}},
		{"exact", cp.Vector{X: 5, Y: 0}, 5, cp.Vector{}},
		{"zero_delta", cp.Vector{X: 5, Y: 0}, 0, cp.Vector{X: 5, Y: 0}},
		{"negative_delta", cp.Vector{X: 5, Y: 0}, -1, cp.Vector{X: 5, Y: 0}},
		{"diagonal", cp.Vector{X: 3, Y: 4}, 2.5, cp.Vector{X: 1.5, Y: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Approach(c.v, cp.Vector{}, c.maxDelta); !vecEq(got, c.out) {
				t.Fatalf("Approach(%v, zero, %v) = %v, want %v", c.v, c.maxDelta, got, c.out)
			}
		})
	}
}

func TestAngleDeg(t *testing.T) {
	cases := []struct {
		name string
		a, b cp.Vector
		out  float64
	}{
		{"same", cp.Vector{X: 0, Y: -1}, cp.Vector{X: 0, Y: -1}, 0},
		{"perpendicular", cp.Vector{X: 1, Y: 0}, cp.Vector{X: 0, Y: 1}, 90},
		{"opposite", cp.Vector{X: 1, Y: 0}, cp.Vector{X: -1, Y: 0}, 180},
		{"forty_five", cp.Vector{X: 1, Y: 0}, cp.Vector{X: 1, Y: 1}, 45},
		{"zero_vector", cp.Vector{}, cp.Vector{X: 1, Y: 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := AngleDeg(c.a, c.b); math.Abs(got-c.out) > 1e-7 {
				t.Fatalf("AngleDeg(%v, %v) = %v, want %v", c.a, c.b, got, c.out)
			}
		})
	}
}
