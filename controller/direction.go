package controller

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/input"
)

// DirectionStrategy converts raw input axes into a world-space movement
// direction with magnitude at most 1. Swapping the strategy is how controller
// variants differ instead of subclassing.
type DirectionStrategy interface {
	MovementDirection(in input.Sample) cp.Vector
}

// Sidescroller maps the horizontal axis along world X and ignores the
// vertical axis.
type Sidescroller struct{}

func (Sidescroller) MovementDirection(in input.Sample) cp.Vector {
	return cp.Vector{X: clampAxis(in.MoveX)}
}

// Planar maps both axes onto the world plane, for top-down movement. Screen Y
// grows downward, so a positive vertical axis moves toward negative Y.
type Planar struct{}

func (Planar) MovementDirection(in input.Sample) cp.Vector {
	dir := cp.Vector{X: clampAxis(in.MoveX), Y: -clampAxis(in.MoveY)}
	if dir.LengthSq() > 1 {
		dir = dir.Normalize()
	}
	return dir
}

func clampAxis(axis float64) float64 {
	if axis > 1 {
		return 1
	}
	if axis < -1 {
		return -1
	}
	return axis
}
