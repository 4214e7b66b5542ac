// Package option provides an optional value, the source type of
// effect.FromOption.
package option

// Option holds either a value or nothing. The zero value is None.
type Option[A any] struct {
	value   A
	present bool
}

// Some wraps a present value.
func Some[A any](value A) Option[A] {
	return Option[A]{value: value, present: true}
}

// None is the absent case.
func None[A any]() Option[A] {
	return Option[A]{}
}

// FromPtr treats a nil pointer as None and dereferences otherwise.
func FromPtr[A any](p *A) Option[A] {
	if p == nil {
		return None[A]()
	}
	return Some(*p)
}

func (o Option[A]) IsSome() bool { return o.present }
func (o Option[A]) IsNone() bool { return !o.present }

// Get returns the value and whether it is present.
func (o Option[A]) Get() (A, bool) {
	return o.value, o.present
}

// GetOrElse returns the value, or fallback when absent.
func (o Option[A]) GetOrElse(fallback A) A {
	if o.present {
		return o.value
	}
	return fallback
}
