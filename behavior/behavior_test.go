package behavior

import (
	"reflect"
	"testing"

	"github.com/milk9111/locomotion/controller"
)

func groundedCtx(anims *[]string) *Context {
	return &Context{
		Grounded: true,
		Movement: controller.Grounded,
		Animation: func(name string) {
			if anims != nil {
				*anims = append(*anims, name)
			}
		},
	}
}

func TestTreeStartsIdle(t *testing.T) {
	var anims []string
	ctx := groundedCtx(&anims)

	tree := NewTree()
	tree.Machine.Start(ctx)

	if leaf := tree.Machine.Leaf(); leaf != tree.Idle {
		t.Fatalf("grounded start should land on idle, got %s", leaf.Name())
	}
	if !reflect.DeepEqual(anims, []string{"idle"}) {
		t.Fatalf("expected the idle animation, got %v", anims)
	}
}

func TestTreeStartsMovingWithInput(t *testing.T) {
	ctx := groundedCtx(nil)
	ctx.Input.MoveX = 1

	tree := NewTree()
	tree.Machine.Start(ctx)

	if leaf := tree.Machine.Leaf(); leaf != tree.Move {
		t.Fatalf("start with input should land on move, got %s", leaf.Name())
	}
}

func TestGroundMovementTransitions(t *testing.T) {
	var anims []string
	ctx := groundedCtx(&anims)
	tree := NewTree()
	tree.Machine.Start(ctx)

	ctx.Input.MoveX = 1
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Move {
		t.Fatalf("input should shift idle to move, got %s", tree.Machine.Leaf().Name())
	}

	ctx.Input.MoveX = 0
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Idle {
		t.Fatalf("releasing input should return to idle, got %s", tree.Machine.Leaf().Name())
	}

	want := []string{"idle", "run", "idle"}
	if !reflect.DeepEqual(anims, want) {
		t.Fatalf("animation sequence = %v, want %v", anims, want)
	}
}

func TestAirborneBranch(t *testing.T) {
	var anims []string
	ctx := groundedCtx(&anims)
	tree := NewTree()
	tree.Machine.Start(ctx)

	// leave the ground while moving upward
	ctx.Grounded = false
	ctx.Movement = controller.Jumping
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Rise {
		t.Fatalf("jumping should land on air/rise, got %s", tree.Machine.Leaf().Name())
	}

	// apex passed
	ctx.Movement = controller.Falling
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Fall {
		t.Fatalf("falling should shift rise to fall, got %s", tree.Machine.Leaf().Name())
	}

	// touch down with input held
	ctx.Grounded = true
	ctx.Movement = controller.Grounded
	ctx.Input.MoveX = -1
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Move {
		t.Fatalf("landing with input should resume move, got %s", tree.Machine.Leaf().Name())
	}

	want := []string{"idle", "jump", "fall", "run"}
	if !reflect.DeepEqual(anims, want) {
		t.Fatalf("animation sequence = %v, want %v", anims, want)
	}
}

func TestFallingOffLedgeSkipsRise(t *testing.T) {
	ctx := groundedCtx(nil)
	tree := NewTree()
	tree.Machine.Start(ctx)

	ctx.Grounded = false
	ctx.Movement = controller.Falling
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Fall {
		t.Fatalf("walking off a ledge goes straight to fall, got %s", tree.Machine.Leaf().Name())
	}
}

func TestNilAnimationCallbackIsSafe(t *testing.T) {
	ctx := &Context{Grounded: true, Movement: controller.Grounded}
	tree := NewTree()
	tree.Machine.Start(ctx)
	ctx.Input.MoveX = 1
	tree.Machine.Tick(ctx, 0)
	if tree.Machine.Leaf() != tree.Move {
		t.Fatalf("tree should work without an animation sink")
	}
}
