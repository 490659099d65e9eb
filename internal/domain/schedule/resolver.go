package schedule

import (
	"time"

	"github.com/stilevo/stilevo-api/internal/httperr"
)

// Relative date labels the booking UI and the phone assistant speak in.
const (
	LabelToday    = "Today"
	LabelTomorrow = "Tomorrow"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weekdayIndex(label string) (int, bool) {
	for i, name := range weekdayNames {
		if name == label {
			return i, true
		}
	}
	return 0, false
}

// Resolver converts relative date labels to absolute timestamps and back.
//
// Strict controls the unrecognized-label path: historically an unknown label
// silently resolved to today's date. That behavior is kept as the default,
// with Strict=true rejecting it for callers that want a hard error.
type Resolver struct {
	Strict bool
}

func NewResolver(strict bool) *Resolver {
	return &Resolver{Strict: strict}
}

// Resolve maps a label ("Today", "Tomorrow" or a weekday short name) plus an
// "HH:MM" clock time onto an absolute timestamp, relative to now. A weekday
// label always lands strictly after today: when the raw offset is <= 0 a full
// week is added, so "this weekday" never resolves to today or earlier.
func (r *Resolver) Resolve(label, hhmm string, now time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time")
	}

	target := now
	switch label {
	case LabelToday:
		// keep today
	case LabelTomorrow:
		target = now.AddDate(0, 0, 1)
	default:
		if idx, ok := weekdayIndex(label); ok {
			diff := idx - int(now.Weekday())
			if diff <= 0 {
				diff += 7
			}
			target = now.AddDate(0, 0, diff)
		} else if r.Strict {
			return time.Time{}, httperr.ErrBusiness("unknown_date_label")
		}
		// legacy fallback: unknown label books for today
	}

	return time.Date(
		target.Year(), target.Month(), target.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		now.Location(),
	), nil
}

// LabelFor is the inverse projection used when listing appointments.
func (r *Resolver) LabelFor(ts, now time.Time) string {
	if sameDay(ts, now) {
		return LabelToday
	}
	if sameDay(ts, now.AddDate(0, 0, 1)) {
		return LabelTomorrow
	}
	return weekdayNames[int(ts.Weekday())]
}

// TimeFor renders the 24-hour "HH:MM" display string.
func TimeFor(ts time.Time) string {
	return ts.Format("15:04")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
