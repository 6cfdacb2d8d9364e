// Package hsm is a generic hierarchical state machine: a tree of states with
// nested active-child tracking, enter/exit/update lifecycle, and transitions
// resolved through the lowest common ancestor. Trees are built explicitly at
// startup and never mutated while ticking.
package hsm

// Hooks are the behavior callbacks attached to a State. Any may be nil.
type Hooks[C any] struct {
	OnEnter  func(ctx C)
	OnExit   func(ctx C)
	OnUpdate func(ctx C)
	// Transition nominates a transition target for this tick; nil means stay.
	Transition func(ctx C) *State[C]
	// InitialChild nominates the child to descend into when this state is
	// entered as a transition target.
	InitialChild func(ctx C) *State[C]
}

// State is one node in the tree. A state is active iff it lies on the chain
// of active-child references from the root — the active path, which always
// ends at exactly one leaf.
type State[C any] struct {
	name   string
	parent *State[C]
	active *State[C]
	hooks  Hooks[C]
}

// New constructs a state under parent; pass nil for the root.
func New[C any](name string, parent *State[C], hooks Hooks[C]) *State[C] {
	return &State[C]{name: name, parent: parent, hooks: hooks}
}

func (s *State[C]) Name() string           { return s.name }
func (s *State[C]) Parent() *State[C]      { return s.parent }
func (s *State[C]) ActiveChild() *State[C] { return s.active }

// IsActive reports whether s lies on the active path.
func (s *State[C]) IsActive() bool {
	if s.parent == nil {
		return true
	}
	return s.parent.active == s && s.parent.IsActive()
}

// Leaf returns the deepest active descendant of s, or s itself.
func (s *State[C]) Leaf() *State[C] {
	cur := s
	for cur.active != nil {
		cur = cur.active
	}
	return cur
}

// LCA returns the lowest common ancestor of a and b; LCA(a, a) is a. It
// panics when the states share no root, since that means two different trees
// were wired together — an unrecoverable configuration error.
func LCA[C any](a, b *State[C]) *State[C] {
	seen := make(map[*State[C]]struct{})
	for n := a; n != nil; n = n.parent {
		seen[n] = struct{}{}
	}
	for n := b; n != nil; n = n.parent {
		if _, ok := seen[n]; ok {
			return n
		}
	}
	panic("hsm: states share no common ancestor")
}

// enter activates s under its parent, runs OnEnter, then descends into the
// nominated initial child recursively. Parents finish entering before
// children.
func (s *State[C]) enter(ctx C) {
	s.enterShallow(ctx)
	if s.hooks.InitialChild != nil {
		if child := s.hooks.InitialChild(ctx); child != nil {
			child.enter(ctx)
		}
	}
}

// enterShallow activates s without the initial-child descent; used for
// intermediate states on an explicit transition path.
func (s *State[C]) enterShallow(ctx C) {
	if s.parent != nil {
		s.parent.active = s
	}
	if s.hooks.OnEnter != nil {
		s.hooks.OnEnter(ctx)
	}
}

// exit deactivates s: the active child exits first, then s runs its own exit
// callback and clears its active-child pointer. Children always finish
// exiting before their parent.
func (s *State[C]) exit(ctx C) {
	if s.active != nil {
		s.active.exit(ctx)
	}
	if s.hooks.OnExit != nil {
		s.hooks.OnExit(ctx)
	}
	s.active = nil
}

// tick runs one update pass down the active path. Transition checks are
// parent-before-child with first match winning; update callbacks run on the
// way back up, child before parent. A nominated transition aborts the pass.
func (s *State[C]) tick(ctx C) *State[C] {
	if s.hooks.Transition != nil {
		if target := s.hooks.Transition(ctx); target != nil {
			return target
		}
	}
	if s.active != nil {
		if target := s.active.tick(ctx); target != nil {
			return target
		}
	}
	if s.hooks.OnUpdate != nil {
		s.hooks.OnUpdate(ctx)
	}
	return nil
}
