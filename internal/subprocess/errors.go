package subprocess

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoCommand is returned when an empty argv is run.
var ErrNoCommand = errors.New("no command given")

// TimeoutError represents a command that exceeded its timeout
type TimeoutError struct {
	Command string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %v: %s", e.Timeout, e.Command)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// StillAliveError is returned by CreatePidfile when the process recorded in
// the pidfile is still running.
type StillAliveError struct {
	PID     int
	Pidfile string
}

func (e *StillAliveError) Error() string {
	return fmt.Sprintf("an old instance is still running (pid %d, see %s)", e.PID, e.Pidfile)
}
