// Package maybe provides a two-variant present/absent wrapper. Lookups
// that may legitimately find nothing return a Maybe instead of a nil
// pointer or a sentinel error, so absence is handled explicitly at the
// call site.
package maybe

// Maybe holds a value that may be absent. The zero value is None.
type Maybe[T any] struct {
	value   T
	present bool
}

// Some creates a present Maybe.
func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, present: true}
}

// None creates an absent Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsPresent reports whether a value is held.
func (m Maybe[T]) IsPresent() bool {
	return m.present
}

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.present
}

// GetOrElse returns the value, or fallback when absent.
func (m Maybe[T]) GetOrElse(fallback T) T {
	if m.present {
		return m.value
	}
	return fallback
}

// Map transforms a present value. None passes through unchanged.
func Map[T, U any](m Maybe[T], fn func(T) U) Maybe[U] {
	if !m.present {
		return None[U]()
	}
	return Some(fn(m.value))
}

// FlatMap chains maybe-returning operations.
func FlatMap[T, U any](m Maybe[T], fn func(T) Maybe[U]) Maybe[U] {
	if !m.present {
		return None[U]()
	}
	return fn(m.value)
}
