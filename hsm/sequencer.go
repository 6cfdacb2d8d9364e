package hsm

// sequencer phases: idle forwards ticks to the tree; a transition runs
// deactivating → switching (instantaneous) → activating → idle, or straight
// into a new deactivation when a request coalesced mid-flight.
type seqPhase int

const (
	seqIdle seqPhase = iota
	seqDeactivating
	seqActivating
)

// Sequencer coalesces and phases transitions so they resolve over multiple
// ticks instead of instantaneously. Requests coalesce last-write-wins: one
// arriving while the deactivation leg is still running replaces the
// destination outright, so a superseded target is never entered; one arriving
// after the switch waits as the single pending request. An in-flight phase
// always runs to completion; there is no cancellation path.
type Sequencer[C any] struct {
	machine *Machine[C]

	deactivate PhaseFactory
	activate   PhaseFactory

	phase   seqPhase
	target  *State[C]
	pending *State[C]
	current Phase
}

func newSequencer[C any](m *Machine[C]) *Sequencer[C] {
	return &Sequencer[C]{machine: m}
}

// InFlight reports whether a transition is being sequenced.
func (q *Sequencer[C]) InFlight() bool { return q.phase != seqIdle }

// Target returns the in-flight destination, or nil.
func (q *Sequencer[C]) Target() *State[C] { return q.target }

// Pending returns the coalesced next destination, or nil.
func (q *Sequencer[C]) Pending() *State[C] { return q.pending }

// CurrentPhase returns the phase being polled, or nil while idle or between
// instantaneous legs.
func (q *Sequencer[C]) CurrentPhase() Phase { return q.current }

// request starts a transition immediately, retargets one whose switch has
// not happened yet, or queues behind one that has.
func (q *Sequencer[C]) request(ctx C, target *State[C]) {
	if target == nil {
		return
	}
	switch q.phase {
	case seqIdle:
		q.begin(ctx, target)
	case seqDeactivating:
		q.target = target
	case seqActivating:
		q.pending = target
	}
}

func (q *Sequencer[C]) begin(ctx C, target *State[C]) {
	q.target = target
	q.phase = seqDeactivating
	q.current = nil
	if q.deactivate != nil {
		q.current = q.deactivate()
	}
	if q.current == nil {
		// no deactivation phase: fall straight through to the switch
		q.advance(ctx, 0)
	}
}

// tick polls the in-flight phase. The machine calls this instead of the
// tree's own update while a transition is in flight.
func (q *Sequencer[C]) tick(ctx C, dt float64) {
	if q.phase == seqIdle {
		return
	}
	q.advance(ctx, dt)
}

func (q *Sequencer[C]) advance(ctx C, dt float64) {
	if q.phase == seqDeactivating {
		if q.current != nil && !q.current.Update(dt) {
			return
		}
		// the switch itself is instantaneous
		q.machine.switchTo(ctx, q.target)
		q.phase = seqActivating
		q.current = nil
		if q.activate != nil {
			if q.current = q.activate(); q.current != nil {
				// first poll happens next tick
				return
			}
		}
	}

	if q.phase == seqActivating {
		if q.current != nil && !q.current.Update(dt) {
			return
		}
		q.current = nil
		q.target = nil
		q.phase = seqIdle
		if q.pending != nil {
			next := q.pending
			q.pending = nil
			q.begin(ctx, next)
		}
	}
}
