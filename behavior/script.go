package behavior

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/locomotion/hsm"
)

// lifecycleDispatch routes each phase to the functions the script must
// define: onEnter, update, and onExit, each taking (ctx, state).
const lifecycleDispatch = `
if __phase == "enter" {
	onEnter(__ctx, __state)
} else if __phase == "update" {
	update(__ctx, __state)
} else if __phase == "exit" {
	onExit(__ctx, __state)
}
`

// Script is a compiled tengo program driving a behavior state's lifecycle.
// Transitions stay in typed Go hooks; scripts handle effects only. The
// __state map persists across phases so a script can keep counters or timers.
type Script struct {
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScript compiles tengo source with the lifecycle dispatcher appended.
func LoadScript(src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+lifecycleDispatch)...))
	if err := script.Add("__phase", ""); err != nil {
		return nil, fmt.Errorf("behavior: add phase: %w", err)
	}
	if err := script.Add("__ctx", map[string]any{}); err != nil {
		return nil, fmt.Errorf("behavior: add ctx: %w", err)
	}
	if err := script.Add("__state", map[string]any{}); err != nil {
		return nil, fmt.Errorf("behavior: add state: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile script: %w", err)
	}
	return &Script{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// LoadScriptFile compiles the script at path.
func LoadScriptFile(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("behavior: read script %s: %w", path, err)
	}
	return LoadScript(src)
}

// Hooks adapts the script's lifecycle functions into hsm hooks. Script
// errors are logged, not propagated; a broken script must not take the
// machine down mid-tick.
func (s *Script) Hooks() hsm.Hooks[*Context] {
	return hsm.Hooks[*Context]{
		OnEnter:  func(ctx *Context) { s.runPhase("enter", ctx) },
		OnUpdate: func(ctx *Context) { s.runPhase("update", ctx) },
		OnExit:   func(ctx *Context) { s.runPhase("exit", ctx) },
	}
}

func (s *Script) runPhase(phase string, ctx *Context) {
	if err := s.Run(phase, ctx); err != nil {
		fmt.Printf("behavior: script %s error: %v\n", phase, err)
	}
}

// Run executes one lifecycle phase with the context exposed as a script map.
func (s *Script) Run(phase string, ctx *Context) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("behavior: nil script")
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__ctx", scriptContext(ctx)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Run()
}

// StateValue returns a value the script stored in its persistent __state map.
func (s *Script) StateValue(key string) (tengo.Object, bool) {
	if s == nil || s.state == nil {
		return nil, false
	}
	v, ok := s.state.Value[key]
	return v, ok
}

func scriptContext(ctx *Context) map[string]any {
	if ctx == nil {
		return map[string]any{}
	}
	return map[string]any{
		"grounded":   ctx.Grounded,
		"move_x":     ctx.Input.MoveX,
		"move_y":     ctx.Input.MoveY,
		"jump":       ctx.Input.Jump,
		"state":      ctx.Movement.String(),
		"velocity_x": ctx.Velocity.X,
		"velocity_y": ctx.Velocity.Y,
	}
}
