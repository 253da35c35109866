package fsm

import "time"

// StateTimeExceeds passes once the active leaf has been entered for at least d
func StateTimeExceeds[T any](d time.Duration) GuardFunc[T] {
	return func(_ T, m *Machine[T]) bool {
		return m.timeInState >= d
	}
}

// Not negates a guard
func Not[T any](g GuardFunc[T]) GuardFunc[T] {
	return func(ctx T, m *Machine[T]) bool {
		return !g(ctx, m)
	}
}

// When adapts a context-only predicate into a guard
func When[T any](pred func(ctx T) bool) GuardFunc[T] {
	return func(ctx T, _ *Machine[T]) bool {
		return pred(ctx)
	}
}
