// Package behavior drives a character's layered behavior with the hsm
// engine, fed each frame from the movement controller's derived context.
package behavior

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/controller"
	"github.com/milk9111/locomotion/input"
)

// Context is the shared blackboard the behavior tree inspects every tick.
// The owner refreshes it once per frame from the controller before ticking.
type Context struct {
	Input    input.Sample
	Grounded bool
	Movement controller.State
	Velocity cp.Vector

	// Animation receives the animation name when a state is entered; nil is
	// fine for headless use.
	Animation func(name string)
}

func (c *Context) animate(name string) {
	if c != nil && c.Animation != nil {
		c.Animation(name)
	}
}
