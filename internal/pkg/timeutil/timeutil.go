package timeutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the persisted calendar-date format (local wall clock).
	DateLayout = "2006-01-02"
	// TimeLayout is the persisted time-of-day format (local wall clock, 24h).
	TimeLayout = "15:04"
)

// AnomalyThreshold caps a plausible single session. Any session this long
// (or longer) is clock skew or a stale record, not a real shift. The
// stale-session job waits out the same window before force-closing, so a
// live overnight shift is never closed under its user.
const AnomalyThreshold = 18 * time.Hour

// FormatDate renders t as the persisted local calendar-date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders t as the persisted local time-of-day string.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// Combine rebuilds a local instant from a persisted date and time-of-day pair.
func Combine(date, hhmm string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("combine %q %q: %w", date, hhmm, err)
	}
	return t, nil
}

// WorkedMinutes computes whole minutes between check-in and check-out
// instants. A check-out earlier than the check-in is a session that crossed
// midnight while both instants were rebuilt on the record's date, so 24
// hours are added before computing. If the session still runs backwards
// after the correction, or comes out at AnomalyThreshold or more, it is an
// anomaly and reports ok=false; callers must leave the derived fields unset
// rather than persist a garbage value.
func WorkedMinutes(checkIn, checkOut time.Time) (minutes int, ok bool) {
	if checkOut.Before(checkIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}
	d := checkOut.Sub(checkIn)
	if d < 0 || d >= AnomalyThreshold {
		return 0, false
	}
	return int((d + 30*time.Second) / time.Minute), true
}

// LoadLocation resolves an IANA timezone name, falling back to UTC when the
// name is unknown or empty.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
