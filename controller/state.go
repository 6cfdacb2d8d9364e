package controller

// State is the discrete movement state of a Controller. Exactly one is
// active at a time; transitions are evaluated once per fixed step.
type State int

const (
	Grounded State = iota
	Sliding
	Falling
	Rising
	Jumping
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Sliding:
		return "sliding"
	case Falling:
		return "falling"
	case Rising:
		return "rising"
	case Jumping:
		return "jumping"
	}
	return "unknown"
}
