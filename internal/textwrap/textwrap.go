// Package textwrap wraps multi-line text to a display width.
//
// Unlike a plain paragraph filler, explicit line breaks are preserved and
// every line keeps its own leading indentation on continuation lines.
// Widths are measured in terminal columns, so wide runes count double.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is used when a non-positive width is given.
const DefaultWidth = 80

const tabSize = 8

// Wrap splits msg on newlines, indents each line by indent spaces and wraps
// it to width columns. Empty lines are kept.
func Wrap(msg string, width, indent int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	if indent < 0 {
		indent = 0
	}

	msg = strings.ReplaceAll(msg, "\t", strings.Repeat(" ", tabSize))

	var out []string
	for _, line := range strings.Split(msg, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapLine(strings.Repeat(" ", indent)+line, width)...)
	}
	return out
}

// Fill is Wrap joined with newlines.
func Fill(msg string, width, indent int) string {
	return strings.Join(Wrap(msg, width, indent), "\n")
}

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Pad right-pads s with spaces to width columns. Strings already at or over
// width are returned unchanged.
func Pad(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func wrapLine(line string, width int) []string {
	body := strings.TrimLeft(line, " ")
	if body == "" {
		return []string{""}
	}

	// continuation lines reuse the line's own indentation, unless it leaves
	// no room for text
	indent := line[:len(line)-len(body)]
	if Width(indent) >= width {
		indent = ""
	}

	var (
		lines   []string
		cur     strings.Builder
		curW    int
		hasWord bool
		pending string // whitespace held back until the next word fits
	)

	reset := func(prefix string) {
		cur.Reset()
		cur.WriteString(prefix)
		curW = Width(prefix)
		hasWord = false
		pending = ""
	}
	flush := func() {
		lines = append(lines, cur.String())
		reset(indent)
	}

	reset(indent)
	for _, chunk := range chunks(body) {
		if chunk[0] == ' ' {
			if hasWord {
				pending += chunk
			}
			continue
		}

		cw := Width(chunk)
		if hasWord && curW+len(pending)+cw > width {
			flush()
		}
		if hasWord {
			cur.WriteString(pending)
			curW += len(pending)
		}
		pending = ""

		if curW+cw <= width {
			cur.WriteString(chunk)
			curW += cw
			hasWord = true
			continue
		}

		// the word is wider than a whole line: break it
		for _, r := range chunk {
			rw := runewidth.RuneWidth(r)
			if curW+rw > width {
				if hasWord {
					flush()
				} else if curW > 0 {
					reset("")
				}
			}
			cur.WriteRune(r)
			curW += rw
			hasWord = true
		}
	}

	if hasWord {
		lines = append(lines, cur.String())
	}
	return lines
}

// chunks splits s into alternating runs of spaces and non-spaces.
func chunks(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		j := i
		space := s[i] == ' '
		for j < len(s) && (s[j] == ' ') == space {
			j++
		}
		out = append(out, s[i:j])
		i = j
	}
	return out
}
