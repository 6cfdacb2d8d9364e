// Package controller implements the momentum and state machine core of the
// character movement simulation. Each fixed step it reads the ground sensor
// and the latest input sample, advances the five-state model, integrates
// momentum, and returns the velocity for the external physics integrator.
package controller

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/sensor"
)

// risingThreshold is the minimum vertical momentum magnitude that counts as
// rising, filtering out numeric noise.
const risingThreshold = 0.001

// airborneMomentumControl scales air control down when momentum already
// exceeds movement speed, so external knockback is steerable but not
// cancellable.
const airborneMomentumControl = 0.25

// GroundSensor is the controller's view of the ground-sensing collaborator.
type GroundSensor interface {
	Cast() sensor.Result
	SetExtendedRange(on bool)
}

// CeilingDetector reports head contact. It is reset once per step; a missing
// detector means "no ceiling hit".
type CeilingDetector interface {
	HitCeiling() bool
	Reset()
}

// Frame converts between the character's local frame and world space, and
// exposes the character's world position for height-dependent gravity.
type Frame interface {
	ToWorld(v cp.Vector) cp.Vector
	ToLocal(v cp.Vector) cp.Vector
	Position() cp.Vector
}

// BodyFrame adapts a chipmunk body as a Frame. Only the body's rotation
// participates in vector conversion.
type BodyFrame struct {
	Body *cp.Body
}

func (f BodyFrame) ToWorld(v cp.Vector) cp.Vector { return v.Rotate(f.Body.Rotation()) }
func (f BodyFrame) ToLocal(v cp.Vector) cp.Vector { return v.Unrotate(f.Body.Rotation()) }
func (f BodyFrame) Position() cp.Vector           { return f.Body.Position() }

// Listener receives movement notifications. The vector is the world-space
// momentum at the moment of the event. Callbacks are fire-and-forget and run
// synchronously at defined points in the step.
type Listener interface {
	OnJump(momentum cp.Vector)
	OnLand(momentum cp.Vector)
}

// jumpLatch tracks jump-key edges across frames. The lock arms when a jump
// starts and clears only on key release, so holding the key yields exactly
// one jump per press-release cycle.
type jumpLatch struct {
	held     bool
	pressed  bool
	released bool
	locked   bool
}

func (j *jumpLatch) observe(down bool) {
	if down && !j.held {
		j.pressed = true
	}
	if !down && j.held {
		j.released = true
		j.locked = false
	}
	j.held = down
}

func (j *jumpLatch) resetEdges() {
	j.pressed = false
	j.released = false
}

// Controller evolves a character's momentum and discrete movement state.
// It owns no position; the external integrator applies the velocity that
// Step returns.
type Controller struct {
	tuning Tuning

	ground    GroundSensor
	source    input.Source
	gravity   GravityProvider
	ceiling   CeilingDetector
	frame     Frame
	direction DirectionStrategy
	listeners []Listener

	up cp.Vector
	in input.Sample

	state    State
	momentum cp.Vector

	grounded     bool
	groundNormal cp.Vector
	jump         jumpLatch

	savedVelocity         cp.Vector
	savedMovementVelocity cp.Vector
}

// New creates a controller in the Falling state with world up pointing
// toward negative screen Y. Missing collaborators degrade to neutral
// defaults: zero input, constant gravity, no ceiling hits.
func New(tuning Tuning, ground GroundSensor) *Controller {
	tuning.Sanitize()
	c := &Controller{
		tuning:    tuning,
		ground:    ground,
		direction: Sidescroller{},
		up:        cp.Vector{X: 0, Y: -1},
		state:     Falling,
	}
	c.groundNormal = c.up
	return c
}

func (c *Controller) SetInput(s input.Source)              { c.source = s }
func (c *Controller) SetGravityProvider(g GravityProvider) { c.gravity = g }
func (c *Controller) SetCeilingDetector(d CeilingDetector) { c.ceiling = d }
func (c *Controller) SetFrame(f Frame)                     { c.frame = f }
func (c *Controller) SetDirectionStrategy(d DirectionStrategy) {
	if d != nil {
		c.direction = d
	}
}

// SetUp overrides the world up axis. Zero vectors are ignored.
func (c *Controller) SetUp(up cp.Vector) {
	if up.LengthSq() == 0 {
		return
	}
	c.up = up.Normalize()
}

func (c *Controller) AddListener(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// SetTuning swaps the movement parameters, clamping malformed values. Safe
// to call between steps for live retuning.
func (c *Controller) SetTuning(t Tuning) {
	t.Sanitize()
	c.tuning = t
}

func (c *Controller) Tuning() Tuning { return c.tuning }

// State returns the active discrete state.
func (c *Controller) State() State { return c.state }

// IsGrounded reports whether the controller considers itself on the ground,
// which includes sliding on a too-steep slope.
func (c *Controller) IsGrounded() bool {
	return c.state == Grounded || c.state == Sliding
}

// Momentum returns the persistent momentum in world space.
func (c *Controller) Momentum() cp.Vector { return c.worldMomentum() }

// SetMomentum overwrites the momentum with a world-space vector.
func (c *Controller) SetMomentum(world cp.Vector) { c.storeMomentum(world) }

// AddMomentum adds a world-space impulse, e.g. knockback from outside.
func (c *Controller) AddMomentum(world cp.Vector) {
	c.storeMomentum(c.worldMomentum().Add(world))
}

// Velocity returns the velocity emitted by the most recent step.
func (c *Controller) Velocity() cp.Vector { return c.savedVelocity }

// GroundNormal returns the surface normal used this step; it equals up while
// airborne.
func (c *Controller) GroundNormal() cp.Vector { return c.groundNormal }

// Up returns the configured world up axis.
func (c *Controller) Up() cp.Vector { return c.up }

// Sample reads the input source once. Call it every frame on the free-running
// cadence; Step consumes the most recent sample on the fixed cadence.
func (c *Controller) Sample() {
	var in input.Sample
	if c.source != nil {
		in = c.source.Read()
	}
	c.in = in
	c.jump.observe(in.Jump)
}

// Step advances the simulation by one fixed timestep and returns the velocity
// to hand to the physics integrator. dt must be the fixed-step delta, not the
// variable frame delta.
func (c *Controller) Step(dt float64) cp.Vector {
	c.checkGround()
	c.determineState()
	c.handleJumping()
	c.handleMomentum(dt)

	velocity := cp.Vector{}
	if c.state == Grounded {
		velocity = c.movementVelocity()
	}
	velocity = velocity.Add(c.worldMomentum())

	if c.ground != nil {
		c.ground.SetExtendedRange(c.IsGrounded())
	}

	c.savedVelocity = velocity
	c.savedMovementVelocity = c.movementVelocity()

	c.jump.resetEdges()
	if c.ceiling != nil {
		c.ceiling.Reset()
	}
	return velocity
}

func (c *Controller) checkGround() {
	c.grounded = false
	c.groundNormal = c.up
	if c.ground == nil {
		return
	}
	res := c.ground.Cast()
	if !res.Hit {
		return
	}
	c.grounded = true
	if res.Normal.LengthSq() > 0 {
		c.groundNormal = res.Normal.Normalize()
	}
}

// determineState evaluates the transition table once. Contact-lost,
// contact-regained, and ceiling handlers fire on the edges.
func (c *Controller) determineState() {
	rising := c.isRising()
	slopeOK := c.slopeAngle() <= c.tuning.SlopeLimit

	switch c.state {
	case Grounded:
		if rising {
			c.onGroundContactLost()
			c.state = Rising
			return
		}
		if !c.grounded {
			c.onGroundContactLost()
			c.state = Falling
			return
		}
		if !slopeOK {
			c.onGroundContactLost()
			c.state = Sliding
			return
		}

	case Falling:
		if rising {
			c.state = Rising
			return
		}
		if c.grounded && slopeOK {
			c.onGroundContactRegained()
			c.state = Grounded
			return
		}
		if c.grounded {
			c.state = Sliding
			return
		}

	case Sliding:
		if rising {
			c.onGroundContactLost()
			c.state = Rising
			return
		}
		if !c.grounded {
			c.onGroundContactLost()
			c.state = Falling
			return
		}
		if slopeOK {
			c.onGroundContactRegained()
			c.state = Grounded
			return
		}

	case Rising:
		if c.hitCeiling() {
			c.onCeilingContact()
			c.state = Falling
			return
		}
		if !rising {
			if c.grounded && slopeOK {
				c.onGroundContactRegained()
				c.state = Grounded
				return
			}
			if c.grounded {
				c.state = Sliding
				return
			}
			c.state = Falling
			return
		}

	case Jumping:
		if !c.jump.held {
			c.state = Rising
			return
		}
		if c.hitCeiling() {
			c.onCeilingContact()
			c.state = Falling
			return
		}
	}
}

// handleJumping is the side transition out of Grounded: a held or freshly
// pressed jump key starts a jump unless the latch is locked.
func (c *Controller) handleJumping() {
	if c.state != Grounded {
		return
	}
	if (c.jump.held || c.jump.pressed) && !c.jump.locked {
		c.onGroundContactLost()
		c.onJumpStart()
		c.state = Jumping
	}
}

// handleMomentum applies gravity, friction, air control, slope physics, and
// the jump hold to the momentum vector. All math is in world space; local
// conversion happens only at entry and exit.
func (c *Controller) handleMomentum(dt float64) {
	mom := c.worldMomentum()

	vertical := common.ExtractComponent(mom, c.up)
	horizontal := mom.Sub(vertical)

	vertical = vertical.Sub(c.up.Mult(c.gravityAt() * dt))

	// while standing, never let gravity accumulate into the ground
	if c.state == Grounded && vertical.Dot(c.up) < 0 {
		vertical = cp.Vector{}
	}

	if !c.IsGrounded() {
		move := c.movementVelocity()
		if horizontal.Length() > c.tuning.MovementSpeed {
			// carrying external momentum: steer at reduced control and never
			// add speed in the direction already travelled
			if move.Dot(horizontal.Normalize()) > 0 {
				move = common.RemoveComponent(move, horizontal.Normalize())
			}
			horizontal = horizontal.Add(move.Mult(c.tuning.AirControlRate * airborneMomentumControl * dt))
		} else {
			horizontal = horizontal.Add(move.Mult(c.tuning.AirControlRate * dt))
			horizontal = horizontal.Clamp(c.tuning.MovementSpeed)
		}
	}

	if c.state == Sliding {
		move := c.movementVelocity()
		downhill := common.ProjectOntoPlane(c.groundNormal, c.up)
		if downhill.LengthSq() > 0 {
			downhill = downhill.Normalize()
			if move.Dot(downhill) < 0 {
				// no steering up the slope
				move = common.RemoveComponent(move, downhill)
			}
		}
		horizontal = horizontal.Add(move.Mult(dt))
	}

	friction := c.tuning.AirFriction
	if c.state == Grounded {
		friction = c.tuning.GroundFriction
	}
	horizontal = common.Approach(horizontal, cp.Vector{}, friction*dt)

	mom = horizontal.Add(vertical)

	if c.state == Sliding {
		mom = common.ProjectOntoPlane(mom, c.groundNormal)
		if mom.Dot(c.up) > 0 {
			mom = common.RemoveComponent(mom, c.up)
		}
		slide := common.ProjectOntoPlane(c.up.Neg(), c.groundNormal)
		if slide.LengthSq() > 0 {
			mom = mom.Add(slide.Normalize().Mult(c.tuning.SlideGravity * dt))
		}
	}

	if c.state == Jumping {
		// re-assert the jump speed for the jump's whole active duration
		mom = common.RemoveComponent(mom, c.up)
		mom = mom.Add(c.up.Mult(c.tuning.JumpSpeed))
	}

	c.storeMomentum(mom)
}

// movementVelocity is the input-driven velocity for this step, distinct from
// the persistent momentum.
func (c *Controller) movementVelocity() cp.Vector {
	var dir cp.Vector
	if c.direction != nil {
		dir = c.direction.MovementDirection(c.in)
	}
	return dir.Mult(c.tuning.MovementSpeed)
}

func (c *Controller) isRising() bool {
	v := common.ExtractComponent(c.worldMomentum(), c.up)
	return v.Dot(c.up) > 0 && v.Length() > risingThreshold
}

func (c *Controller) slopeAngle() float64 {
	return common.AngleDeg(c.groundNormal, c.up)
}

func (c *Controller) hitCeiling() bool {
	return c.ceiling != nil && c.ceiling.HitCeiling()
}

func (c *Controller) gravityAt() float64 {
	if c.gravity == nil {
		return c.tuning.Gravity
	}
	height := 0.0
	if c.frame != nil {
		height = c.frame.Position().Y
	}
	return c.gravity.GravityAt(height)
}

// onGroundContactLost folds the movement velocity being lost into momentum
// without double-counting speed already travelling the same way.
func (c *Controller) onGroundContactLost() {
	mom := c.worldMomentum()
	velocity := c.savedMovementVelocity
	if velocity.LengthSq() > 0 && mom.LengthSq() > 0 {
		projected := common.ExtractComponent(mom, velocity.Normalize())
		dot := projected.Normalize().Dot(velocity.Normalize())
		if projected.LengthSq() >= velocity.LengthSq() && dot > 0 {
			velocity = cp.Vector{}
		} else if dot > 0 {
			velocity = velocity.Sub(projected)
		}
	}
	c.storeMomentum(mom.Add(velocity))
}

// onGroundContactRegained notifies listeners of the landing; it mutates no
// state.
func (c *Controller) onGroundContactRegained() {
	mom := c.worldMomentum()
	for _, l := range c.listeners {
		l.OnLand(mom)
	}
}

// onCeilingContact kills upward momentum after a head bump.
func (c *Controller) onCeilingContact() {
	c.storeMomentum(common.RemoveComponent(c.worldMomentum(), c.up))
}

func (c *Controller) onJumpStart() {
	mom := c.worldMomentum().Add(c.up.Mult(c.tuning.JumpSpeed))
	c.storeMomentum(mom)
	c.jump.locked = true
	for _, l := range c.listeners {
		l.OnJump(mom)
	}
}

func (c *Controller) worldMomentum() cp.Vector {
	if c.tuning.UseLocalMomentum && c.frame != nil {
		return c.frame.ToWorld(c.momentum)
	}
	return c.momentum
}

func (c *Controller) storeMomentum(world cp.Vector) {
	if c.tuning.UseLocalMomentum && c.frame != nil {
		c.momentum = c.frame.ToLocal(world)
		return
	}
	c.momentum = world
}
