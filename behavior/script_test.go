package behavior

import (
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/locomotion/controller"
)

const counterScript = `
onEnter := func(ctx, state) {
	if is_undefined(state.enters) {
		state.enters = 0
	}
	state.enters += 1
}
update := func(ctx, state) {
	if is_undefined(state.updates) {
		state.updates = 0
	}
	state.updates += 1
	state.seen_state = ctx.state
	state.seen_move = ctx.move_x
}
onExit := func(ctx, state) {
	state.exited = true
}
`

func stateInt(t *testing.T, s *Script, key string) int64 {
	t.Helper()
	v, ok := s.StateValue(key)
	if !ok {
		t.Fatalf("script state missing %q", key)
	}
	iv, ok := v.(*tengo.Int)
	if !ok {
		t.Fatalf("script state %q is %T, want int", key, v)
	}
	return iv.Value
}

func TestScriptLifecycleCounters(t *testing.T) {
	s, err := LoadScript([]byte(counterScript))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	ctx := groundedCtx(nil)
	tree := NewTree(WithScript("idle", s))
	tree.Machine.Start(ctx)

	if got := stateInt(t, s, "enters"); got != 1 {
		t.Fatalf("enters after start = %d, want 1", got)
	}

	tree.Machine.Tick(ctx, 0)
	if got := stateInt(t, s, "updates"); got != 1 {
		t.Fatalf("updates after one tick = %d, want 1", got)
	}

	// leave and re-enter idle
	ctx.Input.MoveX = 1
	tree.Machine.Tick(ctx, 0)
	if _, ok := s.StateValue("exited"); !ok {
		t.Fatalf("exiting idle should run the script's onExit")
	}
	ctx.Input.MoveX = 0
	tree.Machine.Tick(ctx, 0)
	if got := stateInt(t, s, "enters"); got != 2 {
		t.Fatalf("enters after re-entry = %d, want 2", got)
	}
}

func TestScriptSeesContext(t *testing.T) {
	s, err := LoadScript([]byte(counterScript))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	ctx := groundedCtx(nil)
	ctx.Movement = controller.Grounded
	ctx.Input.MoveX = 0.5
	// 0.5 input would normally select move; drive the script state directly
	if err := s.Run("update", ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	v, ok := s.StateValue("seen_state")
	if !ok {
		t.Fatalf("script did not record the movement state")
	}
	if v.String() != `"grounded"` {
		t.Fatalf("seen_state = %s, want grounded", v.String())
	}
	mv, ok := s.StateValue("seen_move")
	if !ok {
		t.Fatalf("script did not record move_x")
	}
	if fv, ok := mv.(*tengo.Float); !ok || fv.Value != 0.5 {
		t.Fatalf("seen_move = %v, want 0.5", mv)
	}
}

func TestScriptsLayerOverTypedHooks(t *testing.T) {
	s, err := LoadScript([]byte(counterScript))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	var anims []string
	ctx := groundedCtx(&anims)
	tree := NewTree(WithScript("idle", s))
	tree.Machine.Start(ctx)

	// typed hook fired the animation and the script counted the entry
	if len(anims) != 1 || anims[0] != "idle" {
		t.Fatalf("typed hooks must still run under a script, got %v", anims)
	}
	if got := stateInt(t, s, "enters"); got != 1 {
		t.Fatalf("script hook should run after the typed one, enters = %d", got)
	}
}

func TestLoadScriptCompileError(t *testing.T) {
	if _, err := LoadScript([]byte("onEnter := func(")); err == nil {
		t.Fatalf("broken source must fail to compile")
	}
}

func TestScriptMissingLifecycleFunctions(t *testing.T) {
	// the dispatcher references onEnter/update/onExit; a script that omits
	// them must fail loudly at compile time, not crash a tick
	if _, err := LoadScript([]byte(`x := 1`)); err == nil {
		t.Fatalf("script without lifecycle functions should not compile")
	}
}

func TestScriptRuntimeErrorDoesNotPanic(t *testing.T) {
	src := `
onEnter := func(ctx, state) {
	zero := 0
	state.boom = 1 / zero
}
update := func(ctx, state) {}
onExit := func(ctx, state) {}
`
	s, err := LoadScript([]byte(src))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	ctx := groundedCtx(nil)
	tree := NewTree(WithScript("idle", s))
	tree.Machine.Start(ctx) // logs the error instead of panicking
	if tree.Machine.Leaf() != tree.Idle {
		t.Fatalf("a failing script must not derail the machine")
	}

	if err := s.Run("enter", ctx); err == nil {
		t.Fatalf("Run should surface the runtime error")
	}
}
