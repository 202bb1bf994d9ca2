// Package console holds small terminal helpers: single-key input, width
// detection and prefixed messages.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is returned by Width when the size cannot be determined.
const DefaultWidth = 80

// Getch writes prompt to out, then reads a single character from in. When
// in is a terminal it is put in raw mode for the read so no Enter is needed.
// Cancelling ctx abandons the read and returns ctx.Err() with the terminal
// restored.
func Getch(ctx context.Context, in io.Reader, out io.Writer, prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(out, prompt); err != nil {
			return "", err
		}
	}

	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return "", fmt.Errorf("enter raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, state) }()
	}

	type read struct {
		r   rune
		err error
	}
	ch := make(chan read, 1)
	go func() {
		r, _, err := bufio.NewReader(in).ReadRune()
		ch <- read{r, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case got := <-ch:
		if got.err != nil {
			return "", got.err
		}
		return string(got.r), nil
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind f, or DefaultWidth.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// EMsg prints an error message.
func EMsg(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "[ERROR] %s\n", msg)
}

// IMsg prints an informational message.
func IMsg(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, ">>> %s\n", msg)
}

// EPrint prints args to standard error the way fmt.Println would.
func EPrint(args ...any) {
	_, _ = fmt.Fprintln(os.Stderr, args...)
}
