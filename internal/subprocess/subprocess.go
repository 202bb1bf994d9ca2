// Package subprocess runs external commands and reports failures as
// bugyierror Results.
package subprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/result"
)

// Output holds the trimmed output streams of a finished command. A stream
// redirected with WithStdout or WithStderr is empty.
type Output struct {
	Stdout string
	Stderr string
}

// Process describes a finished command.
type Process struct {
	Args     []string
	ExitCode int
	Output
}

// ToError builds the error reported for a failed command. The error is
// attributed to the caller of ToError, adjusted by any bugyierror.Up option.
func (p *Process) ToError(opts ...bugyierror.Option) *bugyierror.Error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Command Failed (ec=%d): %q", p.ExitCode, p.Args)
	if p.Stdout != "" {
		fmt.Fprintf(&sb, "\n\n----- STDOUT\n%s", p.Stdout)
	}
	if p.Stderr != "" {
		fmt.Fprintf(&sb, "\n\n----- STDERR\n%s", p.Stderr)
	}

	return bugyierror.New(sb.String(), append(opts[:len(opts):len(opts)], bugyierror.Up(1))...)
}

type config struct {
	dir     string
	env     []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	timeout time.Duration
	skip    int
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a command.
type Option func(*config)

// WithDir sets the working directory.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(c *config) { c.env = append(c.env, env...) }
}

// WithStdin connects r to the command's standard input.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout streams standard output to w instead of capturing it.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStderr streams standard error to w instead of capturing it.
func WithStderr(w io.Writer) Option {
	return func(c *config) { c.stderr = w }
}

// WithTimeout kills the command after d. Zero means no limit beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// AddCallerSkip attributes failures reported by Run to a call site n frames
// further up the stack. Wrappers around Run use AddCallerSkip(1).
func AddCallerSkip(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.skip += n
		}
	}
}

// Run executes argv and returns its output. A non-zero exit status, a
// command that cannot be started and a timeout are all reported as an Err
// holding a *bugyierror.Error attributed to the caller of Run.
func Run(ctx context.Context, argv []string, opts ...Option) bugyierror.Result[Output] {
	c := newConfig(opts)
	up := bugyierror.Up(1 + c.skip)

	p, err := run(ctx, argv, c)
	if err != nil {
		return bugyierror.Fail[Output](
			fmt.Sprintf("Failed to run command: %q", argv),
			bugyierror.WithCause(err),
			up,
		)
	}
	if p.ExitCode != 0 {
		return result.Err[Output](p.ToError(up))
	}
	return result.Ok(p.Output)
}

// RunUnchecked executes argv and returns the finished process whatever its
// exit status. The error is non-nil only when the command could not be run
// to completion.
func RunUnchecked(ctx context.Context, argv []string, opts ...Option) (*Process, error) {
	return run(ctx, argv, newConfig(opts))
}

func run(ctx context.Context, argv []string, c *config) (*Process, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.dir
	if len(c.env) > 0 {
		cmd.Env = append(cmd.Environ(), c.env...)
	}
	cmd.Stdin = c.stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if c.stdout != nil {
		cmd.Stdout = c.stdout
	}
	cmd.Stderr = &stderr
	if c.stderr != nil {
		cmd.Stderr = c.stderr
	}

	p := &Process{Args: append([]string(nil), argv...)}

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if c.timeout > 0 && errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, &TimeoutError{
				Command: strings.Join(argv, " "),
				Timeout: c.timeout,
				Err:     ctxErr,
			}
		}
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		p.ExitCode = exitErr.ExitCode()
	default:
		return nil, err
	}

	p.Stdout = strings.TrimSpace(stdout.String())
	p.Stderr = strings.TrimSpace(stderr.String())
	return p, nil
}

// CommandExists reports whether name resolves to an executable on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
