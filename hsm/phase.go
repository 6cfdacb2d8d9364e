package hsm

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is one leg of a sequenced transition. The sequencer polls Update once
// per tick until it reports completion; a phase never blocks.
type Phase interface {
	// Update advances the phase by dt and reports whether it has finished.
	Update(dt float64) bool
}

// PhaseFactory builds a fresh Phase for each transition leg. A nil factory
// makes that leg instantaneous.
type PhaseFactory func() Phase

// NopPhase completes on its first poll.
type NopPhase struct{}

func (NopPhase) Update(float64) bool { return true }

// TimedPhase completes after a fixed duration. It is driven by a tween so
// consumers can read an eased 0..1 progress, e.g. for fading a character out
// during deactivation.
type TimedPhase struct {
	tween *gween.Tween
	value float32
	done  bool
}

// NewTimedPhase runs for duration seconds with linear easing.
func NewTimedPhase(duration float64) *TimedPhase {
	return NewEasedPhase(duration, ease.Linear)
}

// NewEasedPhase runs for duration seconds with the given easing curve.
func NewEasedPhase(duration float64, easing ease.TweenFunc) *TimedPhase {
	if duration < 0 {
		duration = 0
	}
	return &TimedPhase{tween: gween.New(0, 1, float32(duration), easing)}
}

func (p *TimedPhase) Update(dt float64) bool {
	if p.done {
		return true
	}
	v, finished := p.tween.Update(float32(dt))
	p.value = v
	p.done = finished
	return p.done
}

// Progress reports the eased progress in [0, 1].
func (p *TimedPhase) Progress() float64 { return float64(p.value) }
