// Package either provides a two-branch value, the source type of
// effect.FromEither. By convention the left branch carries a failure and
// the right branch a success.
package either

// Either holds exactly one of a left or a right value.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left builds the left branch.
func Left[L, R any](left L) Either[L, R] {
	return Either[L, R]{left: left}
}

// Right builds the right branch.
func Right[L, R any](right R) Either[L, R] {
	return Either[L, R]{right: right, isRight: true}
}

func (e Either[L, R]) IsLeft() bool  { return !e.isRight }
func (e Either[L, R]) IsRight() bool { return e.isRight }

// Left returns the left value and whether this is the left branch.
func (e Either[L, R]) Left() (L, bool) {
	return e.left, !e.isRight
}

// Right returns the right value and whether this is the right branch.
func (e Either[L, R]) Right() (R, bool) {
	return e.right, e.isRight
}
