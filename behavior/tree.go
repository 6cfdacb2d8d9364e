package behavior

import (
	"github.com/milk9111/locomotion/controller"
	"github.com/milk9111/locomotion/hsm"
)

// Tree is the standard character behavior machine:
//
//	root
//	├── ground
//	│   ├── idle
//	│   └── move
//	└── air
//	    ├── rise
//	    └── fall
//
// Composite states build their children explicitly; there is no runtime
// field scanning.
type Tree struct {
	Machine *hsm.Machine[*Context]

	Root   *hsm.State[*Context]
	Ground *hsm.State[*Context]
	Idle   *hsm.State[*Context]
	Move   *hsm.State[*Context]
	Air    *hsm.State[*Context]
	Rise   *hsm.State[*Context]
	Fall   *hsm.State[*Context]
}

// Option customizes a tree at construction time.
type Option func(*treeOptions)

type treeOptions struct {
	scripts map[string]*Script
}

// WithScript layers a compiled script's lifecycle hooks onto the named state.
// Typed hooks run first; scripts are effects only and never steer transitions.
func WithScript(state string, s *Script) Option {
	return func(o *treeOptions) {
		o.scripts[state] = s
	}
}

func NewTree(opts ...Option) *Tree {
	o := &treeOptions{scripts: map[string]*Script{}}
	for _, opt := range opts {
		opt(o)
	}
	scripted := func(name string, hooks hsm.Hooks[*Context]) hsm.Hooks[*Context] {
		if s, ok := o.scripts[name]; ok && s != nil {
			return hsm.Merge(hooks, s.Hooks())
		}
		return hooks
	}

	t := &Tree{}

	t.Root = hsm.New("root", nil, hsm.Hooks[*Context]{
		InitialChild: func(ctx *Context) *hsm.State[*Context] { return t.Ground },
	})

	t.Ground = hsm.New("ground", t.Root, hsm.Hooks[*Context]{
		InitialChild: func(ctx *Context) *hsm.State[*Context] {
			if ctx.Input.MoveX != 0 {
				return t.Move
			}
			return t.Idle
		},
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if !ctx.Grounded {
				return t.Air
			}
			return nil
		},
	})

	t.Idle = hsm.New("idle", t.Ground, scripted("idle", hsm.Hooks[*Context]{
		OnEnter: func(ctx *Context) { ctx.animate("idle") },
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if ctx.Input.MoveX != 0 {
				return t.Move
			}
			return nil
		},
	}))

	t.Move = hsm.New("move", t.Ground, scripted("move", hsm.Hooks[*Context]{
		OnEnter: func(ctx *Context) { ctx.animate("run") },
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if ctx.Input.MoveX == 0 {
				return t.Idle
			}
			return nil
		},
	}))

	t.Air = hsm.New("air", t.Root, hsm.Hooks[*Context]{
		InitialChild: func(ctx *Context) *hsm.State[*Context] {
			if rising(ctx) {
				return t.Rise
			}
			return t.Fall
		},
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if ctx.Grounded {
				return t.Ground
			}
			return nil
		},
	})

	t.Rise = hsm.New("rise", t.Air, scripted("rise", hsm.Hooks[*Context]{
		OnEnter: func(ctx *Context) { ctx.animate("jump") },
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if !rising(ctx) {
				return t.Fall
			}
			return nil
		},
	}))

	t.Fall = hsm.New("fall", t.Air, scripted("fall", hsm.Hooks[*Context]{
		OnEnter: func(ctx *Context) { ctx.animate("fall") },
		Transition: func(ctx *Context) *hsm.State[*Context] {
			if rising(ctx) {
				return t.Rise
			}
			return nil
		},
	}))

	t.Machine = hsm.NewMachine(t.Root)
	return t
}

func rising(ctx *Context) bool {
	return ctx.Movement == controller.Rising || ctx.Movement == controller.Jumping
}
