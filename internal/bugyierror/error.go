// Package bugyierror provides the error type used across bugyi: an error that
// remembers where it was raised, optionally chains to the error that caused
// it, and can render the whole causal chain as a boxed report.
package bugyierror

import (
	"errors"
	"fmt"
	"io"

	"github.com/bbugyi200/bugyi/internal/inspect"
	"github.com/bbugyi200/bugyi/internal/result"
	"github.com/bbugyi200/bugyi/internal/textwrap"
)

// Title names this error kind in compact output and report headers.
const Title = "BugyiError"

// maxChainDepth bounds chain walks through foreign Unwrap implementations.
const maxChainDepth = 64

// Result is a Result whose failures are expected to be *Error values.
type Result[T any] = result.Result[T]

// Error is a failure annotated with the call site that raised it and an
// optional cause.
type Error struct {
	msg   string
	cause error
	site  inspect.Site
}

type options struct {
	cause error
	up    int
}

// Option configures New.
type Option func(*options)

// WithCause records err as the direct cause of the new error.
func WithCause(err error) Option {
	return func(o *options) {
		o.cause = err
	}
}

// Up attributes the error to a call site n frames above the caller of New.
// Helpers that construct errors on behalf of their caller use Up(1).
func Up(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.up += n
		}
	}
}

// New creates an Error with the given message, capturing the caller's site.
func New(msg string, opts ...Option) *Error {
	return newError(msg, 1, opts)
}

// Newf is New with a formatted message.
func Newf(format string, args ...any) *Error {
	return newError(fmt.Sprintf(format, args...), 1, nil)
}

// Wrap creates an Error caused by cause.
func Wrap(cause error, msg string, opts ...Option) *Error {
	return newError(msg, 1, append([]Option{WithCause(cause)}, opts...))
}

// Fail returns an Err Result holding a new Error attributed to the caller
// of Fail.
func Fail[T any](msg string, opts ...Option) result.Result[T] {
	return result.Err[T](newError(msg, 1, opts))
}

// newError captures the site skip frames above its caller, plus any Up.
func newError(msg string, skip int, opts []Option) *Error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Error{
		msg:   msg,
		cause: o.cause,
		// +1 for newError itself
		site: inspect.Capture(skip + 1 + o.up),
	}
}

func (e *Error) Error() string {
	return e.msg
}

// Message returns the error message without site information.
func (e *Error) Message() string {
	return e.msg
}

// Cause returns the direct cause, or nil.
func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Site returns the call site captured when the error was created.
func (e *Error) Site() inspect.Site {
	return e.site
}

// Chain returns e followed by each successive cause, ending at the root
// cause.
func (e *Error) Chain() []error {
	return chainOf(e)
}

func chainOf(err error) []error {
	var chain []error
	for err != nil && len(chain) < maxChainDepth {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}

// Compact formats e as a header of its type and site followed by the message
// indented and filled to width.
func (e *Error) Compact(width int) string {
	return fmt.Sprintf("%s::%s::%s::%d{\n%s\n}",
		Title,
		e.site.Module,
		e.site.Function,
		e.site.Line,
		textwrap.Fill(e.msg, width, 2),
	)
}

// Describe implements Describer.
func (e *Error) Describe(width int) string {
	return e.Compact(width)
}

// Traceback formats e the way a stack trace entry reads: file, line,
// function and source text, then the message.
func (e *Error) Traceback() string {
	return fmt.Sprintf("At %q, line %d, in %s:\n  %s\n%s",
		e.site.File,
		e.site.Line,
		e.site.Function,
		e.site.Source,
		e.msg,
	)
}

// Format implements fmt.Formatter.
//
//	%s, %v  message
//	%q      quoted message
//	%+v     traceback, followed by the cause formatted with %+v
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Traceback())
			if e.cause != nil {
				_, _ = fmt.Fprintf(s, "\ncause: %+v", e.cause)
			}
			return
		}
		_, _ = io.WriteString(s, e.msg)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.msg)
	default:
		_, _ = io.WriteString(s, e.msg)
	}
}
