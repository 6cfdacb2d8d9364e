package controller

import "github.com/milk9111/locomotion/common"

// Tuning holds the movement parameters for a Controller. Values are in world
// units and seconds; SlopeLimit is in degrees.
type Tuning struct {
	MovementSpeed  float64 `yaml:"movement_speed"`
	AirControlRate float64 `yaml:"air_control_rate"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	GroundFriction float64 `yaml:"ground_friction"`
	AirFriction    float64 `yaml:"air_friction"`
	Gravity        float64 `yaml:"gravity"`
	SlideGravity   float64 `yaml:"slide_gravity"`
	SlopeLimit     float64 `yaml:"slope_limit"`
	// UseLocalMomentum stores momentum in the character's local frame instead
	// of world space. Physics math still happens in world space; conversion
	// occurs only at step boundaries.
	UseLocalMomentum bool `yaml:"use_local_momentum"`
}

func DefaultTuning() Tuning {
	return Tuning{
		MovementSpeed:  7,
		AirControlRate: 2,
		JumpSpeed:      10,
		GroundFriction: 100,
		AirFriction:    0.5,
		Gravity:        30,
		SlideGravity:   5,
		SlopeLimit:     80,
	}
}

// Sanitize clamps malformed values to valid minimums. It runs at
// construction and load time so the simulation never sees a negative speed.
func (t *Tuning) Sanitize() {
	if t.MovementSpeed < 0 {
		t.MovementSpeed = 0
	}
	if t.AirControlRate < 0 {
		t.AirControlRate = 0
	}
	if t.JumpSpeed < 0 {
		t.JumpSpeed = 0
	}
	if t.GroundFriction < 0 {
		t.GroundFriction = 0
	}
	if t.AirFriction < 0 {
		t.AirFriction = 0
	}
	if t.Gravity < 0 {
		t.Gravity = 0
	}
	if t.SlideGravity < 0 {
		t.SlideGravity = 0
	}
	t.SlopeLimit = common.Clamp(t.SlopeLimit, 0, 90)
}
