package effect

// RefineToOrDie narrows a catch-all error channel with a partial
// classifier. Errors the classifier recognizes pass through as the
// narrowed typed failure; anything it does not recognize is a contract
// violation and is promoted to a defect that terminates the owning unit
// of execution instead of surfacing through the typed channel.
//
// Usage:
//
//	narrowed := effect.RefineToOrDie(broad, func(err error) (TimeoutError, bool) {
//		var te TimeoutError
//		return te, errors.As(err, &te)
//	})
func RefineToOrDie[R, E, A any](
	eff Effect[R, error, A],
	classify func(error) (E, bool),
) Effect[R, E, A] {
	return Effect[R, E, A]{
		tag:      tagRefine,
		op:       "RefineToOrDie",
		refined:  &eff,
		classify: classify,
	}
}
