package hsm

// Machine owns a state tree and drives ticking and transition sequencing.
type Machine[C any] struct {
	root    *State[C]
	seq     *Sequencer[C]
	started bool
}

// NewMachine wraps a fully constructed tree rooted at root.
func NewMachine[C any](root *State[C]) *Machine[C] {
	m := &Machine[C]{root: root}
	m.seq = newSequencer(m)
	return m
}

// SetPhases installs the factories used for the deactivation and activation
// legs of every transition. Either may be nil for an instantaneous leg.
func (m *Machine[C]) SetPhases(deactivate, activate PhaseFactory) {
	m.seq.deactivate = deactivate
	m.seq.activate = activate
}

// Start enters the root and descends its initial-child chain. Subsequent
// calls are no-ops.
func (m *Machine[C]) Start(ctx C) {
	if m.started {
		return
	}
	m.started = true
	m.root.enter(ctx)
}

// Tick advances the machine one step. While a transition is in flight the
// tree's own transition checks and updates are suspended; only the phase is
// polled.
func (m *Machine[C]) Tick(ctx C, dt float64) {
	if !m.started {
		return
	}
	if m.seq.InFlight() {
		m.seq.tick(ctx, dt)
		return
	}
	if target := m.root.tick(ctx); target != nil {
		m.seq.request(ctx, target)
	}
}

// Request asks for a transition from outside the tree's own transition
// hooks. Mid-flight requests coalesce, last write wins.
func (m *Machine[C]) Request(ctx C, target *State[C]) {
	if !m.started {
		return
	}
	m.seq.request(ctx, target)
}

// Root returns the tree root.
func (m *Machine[C]) Root() *State[C] { return m.root }

// Leaf returns the active leaf.
func (m *Machine[C]) Leaf() *State[C] { return m.root.Leaf() }

// InFlight reports whether a transition is being sequenced.
func (m *Machine[C]) InFlight() bool { return m.seq.InFlight() }

// Sequencer exposes the transition sequencer for inspection.
func (m *Machine[C]) Sequencer() *Sequencer[C] { return m.seq }

// switchTo performs the instantaneous state-graph switch: exit every active
// state up to (not including) the LCA, deepest first, then enter down to
// target, shallowest first. Only the final target descends into its initial
// child.
func (m *Machine[C]) switchTo(ctx C, target *State[C]) {
	from := m.root.Leaf()
	lca := LCA(from, target)

	if lca.active != nil {
		lca.active.exit(ctx)
	}

	var path []*State[C]
	for n := target; n != lca; n = n.parent {
		path = append(path, n)
	}
	if len(path) == 0 {
		// target is the LCA itself; re-descend so the active path still ends
		// at a leaf
		if target.hooks.InitialChild != nil {
			if child := target.hooks.InitialChild(ctx); child != nil {
				child.enter(ctx)
			}
		}
		return
	}
	for i := len(path) - 1; i > 0; i-- {
		path[i].enterShallow(ctx)
	}
	path[0].enter(ctx)
}
