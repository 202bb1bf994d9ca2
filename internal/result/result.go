// Package result implements a Result type: a value that is either Ok, holding
// a success value, or Err, holding an error.
//
// A Result deliberately refuses to act as a flag. Callers must branch on
// IsOk/IsErr (or use Unwrap) rather than treating it as true or false.
package result

import (
	"errors"
	"fmt"

	"github.com/bbugyi200/bugyi/internal/textwrap"
)

// ErrEmpty is the error held by the zero Result.
var ErrEmpty = errors.New("empty result")

// Result holds either a value of type T (Ok) or an error (Err). The zero
// Result is an Err holding ErrEmpty.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok returns a successful Result wrapping v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err returns a failed Result wrapping err. A nil err is a programming
// error and panics.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic(&MisuseError{Object: "Err(<nil>)", Reason: "an Err cannot wrap a nil error"})
	}
	return Result[T]{err: err}
}

// From converts a (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// IsOk reports whether r holds a value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether r holds an error.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Ok returns the wrapped value and true, or the zero value and false.
func (r Result[T]) Ok() (T, bool) {
	return r.value, r.ok
}

// Err returns the wrapped error, or nil for an Ok Result.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return ErrEmpty
	}
	return r.err
}

// Unwrap returns the wrapped value, or the wrapped error unchanged.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

// Must returns the wrapped value and panics with the wrapped error for an
// Err Result.
func (r Result[T]) Must() T {
	if !r.ok {
		panic(r.Err())
	}
	return r.value
}

// UnwrapOr returns the wrapped value, or def for an Err Result.
func (r Result[T]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// UnwrapOrElse returns the wrapped value, or fn applied to the wrapped error.
func (r Result[T]) UnwrapOrElse(fn func(error) T) T {
	if !r.ok {
		return fn(r.Err())
	}
	return r.value
}

// Bool always panics. A Result is not a flag; use IsOk or IsErr.
func (r Result[T]) Bool() bool {
	panic(boolMisuse(r.kind(), r.String()))
}

// String returns "Ok(<value>)" or "Err(\n  <error>\n)".
func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%#v)", r.value)
	}
	return fmt.Sprintf("Err(\n%s\n)", textwrap.Fill(r.Err().Error(), textwrap.DefaultWidth, 2))
}

func (r Result[T]) kind() string {
	if r.ok {
		return "Ok"
	}
	return "Err"
}

// Format implements fmt.Formatter. The %t verb is rejected with a
// diagnostic instead of printing a boolean.
func (r Result[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 't':
		_, _ = fmt.Fprintf(f, "%%!t(%s)", boolMisuse(r.kind(), r.String()).Error())
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", r.String())
	default:
		_, _ = fmt.Fprint(f, r.String())
	}
}

// Map applies fn to the value of an Ok Result. Err Results pass through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.Err())
	}
	return Ok(fn(r.value))
}

// AndThen chains a Result-returning step onto an Ok Result. Err Results pass
// through without calling fn.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.Err())
	}
	return fn(r.value)
}
