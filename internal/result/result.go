// Package result provides a two-variant success/failure wrapper used by
// the engine instead of panics or naked error returns inside pure code.
// Fallible operations in the core and flow packages return a Result so
// failures compose through Map/FlatMap without intermediate checks.
package result

// Result holds either a success value or an error, never both.
// The zero value is a failure with a nil error; construct values with
// Ok or Err.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok creates a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err creates a failed result.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result is a success.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the result is a failure.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Value returns the success value. Check IsOk first; on a failure it
// returns the zero value.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error if the result is a failure, nil otherwise.
func (r Result[T]) Err() error {
	return r.err
}

// Unpack converts the result to Go's conventional (value, error) pair
// for use at service and adapter boundaries.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// GetOrElse returns the success value, or fallback on failure.
func (r Result[T]) GetOrElse(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// Map transforms a successful result's value. A failure passes through
// unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains result-returning operations. The first failure in the
// chain propagates without invoking later steps.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsErr() {
		return Err[U](r.err)
	}
	return fn(r.value)
}
