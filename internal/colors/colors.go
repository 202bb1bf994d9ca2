// Package colors wraps strings in ANSI color escape codes.
package colors

import (
	"errors"
	"fmt"
	"strings"
)

// Reset ends any active color or style.
const Reset = "\033[0m"

// Color is an ANSI foreground color code.
type Color int

const (
	Black Color = iota + 30
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var names = map[string]Color{
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
}

// ErrUnknownColor is returned by Parse for a name outside Names().
var ErrUnknownColor = errors.New("unknown color")

// Parse looks up a color by its lower-case name.
func Parse(name string) (Color, error) {
	c, ok := names[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownColor, name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names lists the known color names in code order.
func Names() []string {
	return []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
}

// Code returns the escape sequence that starts c.
func (c Color) Code() string {
	return fmt.Sprintf("\033[%dm", int(c))
}

// Sprint returns msg wrapped in c and a reset.
func (c Color) Sprint(msg string) string {
	return c.Code() + msg + Reset
}

// Wrap returns a colorizer for an arbitrary SGR code, e.g. 1 for bold or 90
// for gray.
func Wrap(code int) func(string) string {
	return Color(code).Sprint
}
