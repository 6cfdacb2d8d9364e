package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sample is one frame of raw movement input. Axes are in [-1, 1].
type Sample struct {
	MoveX float64
	MoveY float64
	Jump  bool
}

// Source produces a Sample once per frame.
type Source interface {
	Read() Sample
}

// Null is a Source that reports no input. Controllers fed a Null source
// degrade to zero movement direction instead of failing.
type Null struct{}

func (Null) Read() Sample { return Sample{} }

const stickDeadzone = 0.2

// Keyboard reads the ebiten keyboard plus the first connected gamepad.
type Keyboard struct{}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (k *Keyboard) Read() Sample {
	var s Sample

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.MoveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.MoveY -= 1
	}
	s.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			s.MoveX = leftX
		}
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(leftY) > stickDeadzone {
			s.MoveY = -leftY
		}
		s.Jump = s.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return s
}
