package bugyierror

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bbugyi200/bugyi/internal/textwrap"
)

const (
	// DefaultWidth is the report width used when none is given.
	DefaultWidth = 80

	causeBanner = "was the direct cause of"

	// MinWidth is the narrowest report that still fits the cause banner.
	MinWidth = len(causeBanner) + 4

	hCh      = "-"
	vCh      = "|"
	sCh      = "*"
	cornerCh = "+"
)

// Describer is implemented by errors that render their own report block.
// Errors without it are rendered as "<type>: <message>".
type Describer interface {
	Describe(width int) string
}

// Report returns a boxed report of e's causal chain, root cause first.
func (e *Error) Report(width int) *Report {
	return ReportOf(e, width)
}

// ReportOf builds a report for any error, walking its chain through
// Unwrap. Every line of the rendered report is exactly width columns wide;
// width <= 0 selects DefaultWidth and widths below MinWidth are raised to
// MinWidth.
func ReportOf(err error, width int) *Report {
	width = clampWidth(width)
	inner := width - 2
	// body text keeps one space of margin inside each border
	text := inner - 2
	dashes := strings.Repeat(hCh, width)

	chain := chainOf(err)
	slices.Reverse(chain)

	r := NewReport()
	r.Add("\n")
	r.Add(fmt.Sprintf("%[1]s\n%[2]s\n%[1]s\n", dashes, titleRow(inner)))
	for i, link := range chain {
		if i != 0 {
			r.Add(fmt.Sprintf("%[1]s\n%[2]s\n%[1]s\n", dashes, banner(width)))
		}
		for _, line := range textwrap.Wrap(describe(link, text), text, 0) {
			r.Add(vCh + " " + textwrap.Pad(line, text) + " " + vCh + "\n")
		}
	}
	r.Add(dashes)

	return r
}

func clampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return max(width, MinWidth)
}

func describe(err error, width int) string {
	if d, ok := err.(Describer); ok {
		return d.Describe(width)
	}
	return fmt.Sprintf("%T: %+v", err, err)
}

// titleRow centers Title between borders; an odd remainder goes right.
func titleRow(inner int) string {
	left := (inner - len(Title)) / 2
	right := inner - len(Title) - left
	return vCh + strings.Repeat(" ", left) + Title + strings.Repeat(" ", right) + vCh
}

// banner draws "-*-* was the direct cause of *-*-" exactly width columns
// wide, with any odd column on the right.
func banner(width int) string {
	total := width - len(causeBanner) - 2
	left := total / 2
	right := total - left

	return dashStars(left) + " " + causeBanner + " " + reverse(dashStars(right))
}

// dashStars returns the alternating "-*-*..." pattern n columns long.
func dashStars(n int) string {
	return strings.Repeat(hCh+sCh, (n+1)/2)[:n]
}

func reverse(s string) string {
	b := []byte(s)
	slices.Reverse(b)
	return string(b)
}

// Report is a line-oriented error report. Blank lines separate sections;
// every other line is boxed when the report is rendered.
type Report struct {
	lines  []string
	border string
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{border: vCh}
}

// Add appends chunk, split on newlines. A single trailing newline does not
// produce an extra blank line.
func (r *Report) Add(chunk string) {
	if chunk == "" {
		return
	}

	parts := strings.Split(chunk, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	r.lines = append(r.lines, parts...)
}

// Lines returns the rendered lines: each non-blank line gets border
// characters on both ends, and the first and last non-blank lines get
// corner characters.
func (r *Report) Lines() []string {
	out := make([]string, len(r.lines))
	first, last := -1, -1

	for i, line := range r.lines {
		if line == "" {
			continue
		}
		out[i] = closeLine(line, r.border)
		if first < 0 {
			first = i
		}
		last = i
	}

	if first >= 0 {
		out[first] = closeLine(out[first], cornerCh)
		out[last] = closeLine(out[last], cornerCh)
	}

	return out
}

func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// WriteTo writes the rendered report followed by a newline.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String()+"\n")
	return int64(n), err
}

func closeLine(line, edge string) string {
	runes := []rune(line)
	if len(runes) < 2 {
		return line
	}
	return edge + string(runes[1:len(runes)-1]) + edge
}
