package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ExtractComponent returns the part of v that lies along dir. A zero dir
// yields a zero vector.
func ExtractComponent(v, dir cp.Vector) cp.Vector {
	if dir.LengthSq() == 0 {
		return cp.Vector{}
	}
	n := dir.Normalize()
	return n.Mult(v.Dot(n))
}

// RemoveComponent strips the part of v that lies along dir, leaving only the
// perpendicular remainder.
func RemoveComponent(v, dir cp.Vector) cp.Vector {
	return v.Sub(ExtractComponent(v, dir))
}

// ProjectOntoPlane projects v onto the plane (in 2D, the line) perpendicular
// to normal.
func ProjectOntoPlane(v, normal cp.Vector) cp.Vector {
	return RemoveComponent(v, normal)
}

// Approach moves v toward target by at most maxDelta without overshooting.
func Approach(v, target cp.Vector, maxDelta float64) cp.Vector {
	if maxDelta <= 0 {
		return v
	}
	delta := target.Sub(v)
	if delta.LengthSq() <= maxDelta*maxDelta {
		return target
	}
	return v.Add(delta.Normalize().Mult(maxDelta))
}

// AngleDeg returns the unsigned angle between a and b in degrees. Either
// vector being zero yields 0.
func AngleDeg(a, b cp.Vector) float64 {
	la := a.Length()
	lb := b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}
