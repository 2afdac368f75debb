// Package option provides a presence-or-absence container used wherever a lookup
// may legitimately fail without that being an error.
package option

// Option holds either a value (Some) or nothing (None). The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps v as a present value. A nil v is still present.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// OrElse returns the value if present, otherwise fallback.
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}

	return fallback
}

// Map applies f to the value only if it is present.
func Map[T, R any](o Option[T], f func(T) R) Option[R] {
	if !o.ok {
		return None[R]()
	}

	return Some(f(o.value))
}

// FlatMap applies f to the value only if it is present, without re-wrapping.
func FlatMap[T, R any](o Option[T], f func(T) Option[R]) Option[R] {
	if !o.ok {
		return None[R]()
	}

	return f(o.value)
}

// AllSome turns a sequence of options into an option of a sequence. It is Some only
// when every element is present; a single absent element makes the whole result None.
func AllSome[T any](opts []Option[T]) Option[[]T] {
	out := make([]T, 0, len(opts))
	for _, o := range opts {
		if !o.ok {
			return None[[]T]()
		}

		out = append(out, o.value)
	}

	return Some(out)
}
