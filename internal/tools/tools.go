// Package tools wraps desktop helpers: notify-send, xdotool and pass.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bbugyi200/bugyi/internal/bugyierror"
	"github.com/bbugyi200/bugyi/internal/inspect"
	"github.com/bbugyi200/bugyi/internal/result"
	"github.com/bbugyi200/bugyi/internal/subprocess"
)

// DefaultTypeDelay is the xdotool typing delay in milliseconds.
const DefaultTypeDelay = 150

// Urgency is a notify-send urgency level.
type Urgency string

const (
	Low      Urgency = "low"
	Normal   Urgency = "normal"
	Critical Urgency = "critical"
)

// Sentinel errors for invalid arguments.
var (
	ErrInvalidUrgency = errors.New("invalid urgency")
	ErrNoMessage      = errors.New("no notification message specified")
)

// ParseUrgency converts s to an Urgency. The empty string is valid and means
// notify-send's default.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(s); u {
	case "", Low, Normal, Critical:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: low, normal, critical)", ErrInvalidUrgency, s)
	}
}

// Notification is a desktop notification.
type Notification struct {
	// Title defaults to the running program's name.
	Title   string
	Urgency Urgency
	Message []string
}

// Notify sends n with notify-send.
func Notify(ctx context.Context, n Notification) bugyierror.Result[struct{}] {
	if len(n.Message) == 0 {
		return result.Err[struct{}](ErrNoMessage)
	}
	if _, err := ParseUrgency(string(n.Urgency)); err != nil {
		return result.Err[struct{}](err)
	}

	title := n.Title
	if title == "" {
		title = inspect.ScriptName()
	}

	argv := []string{"notify-send", title}
	if n.Urgency != "" {
		argv = append(argv, "-u", string(n.Urgency))
	}
	argv = append(argv, n.Message...)

	return discard(subprocess.Run(ctx, argv, subprocess.AddCallerSkip(1)))
}

// XKey sends a key sequence with `xdotool key`.
func XKey(ctx context.Context, key string) bugyierror.Result[struct{}] {
	return discard(subprocess.Run(ctx, []string{"xdotool", "key", key}, subprocess.AddCallerSkip(1)))
}

// XType types keys with `xdotool type`. Surrounding newlines are stripped
// and a non-positive delay selects DefaultTypeDelay.
func XType(ctx context.Context, keys string, delay int) bugyierror.Result[struct{}] {
	if delay <= 0 {
		delay = DefaultTypeDelay
	}

	argv := []string{"xdotool", "type", "--delay", strconv.Itoa(delay), strings.Trim(keys, "\n")}
	return discard(subprocess.Run(ctx, argv, subprocess.AddCallerSkip(1)))
}

// GetPass returns the secret stored under key by `pass show`.
func GetPass(ctx context.Context, key string) bugyierror.Result[string] {
	r := subprocess.Run(ctx, []string{"pass", "show", key}, subprocess.AddCallerSkip(1))
	return result.Map(r, func(out subprocess.Output) string { return out.Stdout })
}

func discard(r bugyierror.Result[subprocess.Output]) bugyierror.Result[struct{}] {
	return result.Map(r, func(subprocess.Output) struct{} { return struct{}{} })
}
