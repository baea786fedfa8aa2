// Package shift maps wall-clock time to the operating shift and the
// calendar date a shift belongs to.
package shift

import "time"

// Label identifies an operating shift.
type Label string

const (
	AM Label = "AM"
	PM Label = "PM"
)

// AM runs [05:00, 17:00) local time; PM is the complement and crosses
// midnight.
const (
	amStartHour = 5
	amEndHour   = 17
)

// Current returns the shift the given time falls in.
func Current(t time.Time) Label {
	h := t.Hour()
	if h >= amStartHour && h < amEndHour {
		return AM
	}
	return PM
}

// Date returns the calendar date a shift at time t is attributed to. The
// tail of a PM shift (after midnight, before 05:00) still belongs to the
// date the shift started on.
func Date(t time.Time) time.Time {
	if Current(t) == PM && t.Hour() < amStartHour {
		t = t.AddDate(0, 0, -1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString returns Date formatted as YYYY-MM-DD, the key format used for
// order bucketing and summary lookups.
func DateString(t time.Time) string {
	return Date(t).Format("2006-01-02")
}
