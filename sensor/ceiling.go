package sensor

import (
	"github.com/jakecoffman/cp"
)

const ceilingDotThreshold = 0.5

// Ceiling reports head contact by walking the body's current arbiters. It is
// latched: Update marks a hit, HitCeiling reads it, and Reset clears it once
// per simulation step.
type Ceiling struct {
	body *cp.Body
	up   cp.Vector
	hit  bool
}

// NewCeiling watches body for contacts whose normal opposes up.
func NewCeiling(body *cp.Body, up cp.Vector) *Ceiling {
	return &Ceiling{body: body, up: up}
}

// Update samples the body's arbiters. Call after every space step.
func (c *Ceiling) Update() {
	if c == nil || c.body == nil {
		return
	}
	c.body.EachArbiter(func(arb *cp.Arbiter) {
		n := arb.Normal()
		a, _ := arb.Shapes()
		if a.Body() != c.body {
			n = n.Neg()
		}
		// with the body as shape A the contact normal points toward the
		// obstacle, so a normal along up means the surface is overhead
		if n.Dot(c.up) > ceilingDotThreshold {
			c.hit = true
		}
	})
}

func (c *Ceiling) HitCeiling() bool {
	if c == nil {
		return false
	}
	return c.hit
}

// Reset clears the latch; the controller calls this once per step.
func (c *Ceiling) Reset() {
	if c != nil {
		c.hit = false
	}
}
