package result

import "sync"

// Lazy defers a Result-producing function until its Result is first needed.
// The function runs at most once; later calls return the cached Result.
type Lazy[T any] struct {
	once sync.Once
	fn   func() Result[T]
	res  Result[T]
}

// NewLazy returns a Lazy that will call fn on first access.
func NewLazy[T any](fn func() Result[T]) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Deferred turns fn into a function that returns a Lazy instead of running
// immediately.
func Deferred[A, T any](fn func(A) Result[T]) func(A) *Lazy[T] {
	return func(arg A) *Lazy[T] {
		return NewLazy(func() Result[T] { return fn(arg) })
	}
}

// Result evaluates the deferred function on first call and returns the
// cached Result afterwards.
func (l *Lazy[T]) Result() Result[T] {
	l.once.Do(func() {
		l.res = l.fn()
	})
	return l.res
}

// Err evaluates the Lazy and returns its error, if any.
func (l *Lazy[T]) Err() error {
	return l.Result().Err()
}

// Unwrap evaluates the Lazy and returns its value or error.
func (l *Lazy[T]) Unwrap() (T, error) {
	return l.Result().Unwrap()
}

// Must evaluates the Lazy and returns its value, panicking on error.
func (l *Lazy[T]) Must() T {
	return l.Result().Must()
}

// Bool always panics, without evaluating the Lazy.
func (l *Lazy[T]) Bool() bool {
	panic(boolMisuse("Lazy", "Lazy(<unevaluated>)"))
}
