// Package dates parses dates and inclusive date ranges such as
// "2024-01-30:@today".
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical layout used to print dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for input that is not a recognizable date.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRange is returned for a range whose end precedes its start or
// that has more than one separator.
var ErrInvalidRange = errors.New("invalid date range")

// now is replaced in tests.
var now = time.Now

// ParseDate parses s into a date at local midnight. Anything dateparse
// understands is accepted ("2024-1-5", "Jan 30, 2024", "3/5/2024 10am"),
// as are @today (@td) and @yesterday (@yd).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "@today", "@td":
		return truncate(now()), nil
	case "@yesterday", "@yd":
		return truncate(now()).AddDate(0, 0, -1), nil
	}

	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return truncate(t), nil
}

// ParseDateRange parses "FIRST:LAST" into every date from FIRST to LAST
// inclusive. A string without ':' yields a single date.
func ParseDateRange(s string) ([]time.Time, error) {
	first, last, found := strings.Cut(s, ":")
	if !found {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		return []time.Time{d}, nil
	}
	if strings.Contains(last, ":") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	start, err := ParseDate(first)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(last)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, end.Format(DateLayout), start.Format(DateLayout))
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
