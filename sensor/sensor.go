// Package sensor provides ground and ceiling sensing on top of a chipmunk
// space. A cast that hits nothing is a valid, non-exceptional result: the
// character is simply airborne.
package sensor

import (
	"github.com/jakecoffman/cp"
)

// Result is the outcome of a single cast.
type Result struct {
	Hit      bool
	Distance float64
	Normal   cp.Vector
	Shape    *cp.Shape
}

// Sensor casts a segment from a local origin along a local direction through
// a chipmunk space, reporting the closest intersection that is not in the
// ignore set. The cast range can be extended while the character hugs the
// ground so slopes and stair lips stay in reach.
type Sensor struct {
	space *cp.Space
	body  *cp.Body

	// Origin and Direction are in the body's local frame. Direction defaults
	// to straight down in screen coordinates.
	Origin    cp.Vector
	Direction cp.Vector
	Length    float64
	// Extra is added to Length while extended range is enabled.
	Extra float64

	extended bool
	ignore   map[*cp.Shape]struct{}
}

// New creates a sensor casting down from the center of body for length units.
func New(space *cp.Space, body *cp.Body, length float64) *Sensor {
	return &Sensor{
		space:     space,
		body:      body,
		Direction: cp.Vector{X: 0, Y: 1},
		Length:    length,
		Extra:     length * 0.5,
		ignore:    make(map[*cp.Shape]struct{}),
	}
}

// Ignore excludes shapes from future casts, typically the character's own
// collider so it never senses itself.
func (s *Sensor) Ignore(shapes ...*cp.Shape) {
	for _, sh := range shapes {
		if sh != nil {
			s.ignore[sh] = struct{}{}
		}
	}
}

// SetExtendedRange toggles the extra cast length.
func (s *Sensor) SetExtendedRange(on bool) {
	s.extended = on
}

// Cast runs one segment query and returns the closest qualifying hit.
func (s *Sensor) Cast() Result {
	if s == nil || s.space == nil {
		return Result{}
	}

	length := s.Length
	if s.extended {
		length += s.Extra
	}

	origin := s.Origin
	dir := s.Direction
	if s.body != nil {
		rot := s.body.Rotation()
		origin = s.body.Position().Add(origin.Rotate(rot))
		dir = dir.Rotate(rot)
	}
	if dir.LengthSq() == 0 {
		return Result{}
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mult(length))

	best := Result{}
	bestAlpha := 1.0
	s.space.EachShape(func(shape *cp.Shape) {
		if _, skip := s.ignore[shape]; skip {
			return
		}
		var info cp.SegmentQueryInfo
		if !shape.SegmentQuery(origin, end, 0, &info) {
			return
		}
		if !best.Hit || info.Alpha < bestAlpha {
			bestAlpha = info.Alpha
			best = Result{
				Hit:      true,
				Distance: info.Alpha * length,
				Normal:   info.Normal,
				Shape:    shape,
			}
		}
	})
	return best
}
