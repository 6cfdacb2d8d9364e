package hsm

// Merge combines two hook sets: lifecycle callbacks run a then b, while
// Transition and InitialChild prefer a's answer and fall back to b. Useful
// for layering scripted effects over typed behavior.
func Merge[C any](a, b Hooks[C]) Hooks[C] {
	return Hooks[C]{
		OnEnter:      chain(a.OnEnter, b.OnEnter),
		OnExit:       chain(a.OnExit, b.OnExit),
		OnUpdate:     chain(a.OnUpdate, b.OnUpdate),
		Transition:   firstOf(a.Transition, b.Transition),
		InitialChild: firstOf(a.InitialChild, b.InitialChild),
	}
}

func chain[C any](a, b func(C)) func(C) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx C) {
		a(ctx)
		b(ctx)
	}
}

func firstOf[C any](a, b func(C) *State[C]) func(C) *State[C] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx C) *State[C] {
		if s := a(ctx); s != nil {
			return s
		}
		return b(ctx)
	}
}
