package ledger

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrWindowMissing  = errors.New("start and end are required")
	ErrWindowFormat   = errors.New("dates must be ISO-8601 (YYYY-MM-DD or YYYY-MM-DDThh:mm[:ss[.fff]][zone])")
	ErrWindowReversed = errors.New("end is before start")
)

const dateOnly = "2006-01-02"

// timestamp layouts accepted for a bound. Fractional seconds are optional when parsing any
// layout with seconds; layouts without a zone read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// Window is an inclusive [Start, End] range over payment dates, in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow reads ISO-8601 bounds. A date-only end covers that whole day.
func ParseWindow(start, end string) (Window, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Window{}, ErrWindowMissing
	}
	s, _, err := parseBound(start)
	if err != nil {
		return Window{}, err
	}
	e, dayOnly, err := parseBound(end)
	if err != nil {
		return Window{}, err
	}
	if dayOnly {
		e = e.Add(24*time.Hour - time.Nanosecond)
	}
	return NewWindow(s, e)
}

func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: start.UTC(), End: end.UTC()}
	if w.End.Before(w.Start) {
		return Window{}, ErrWindowReversed
	}
	return w, nil
}

func parseBound(v string) (time.Time, bool, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), false, nil
		}
	}
	if t, err := time.Parse(dateOnly, v); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, ErrWindowFormat
}
