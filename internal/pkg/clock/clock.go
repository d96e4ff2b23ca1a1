package clock

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/timeutil"
)

// Clock supplies the wall-clock time the attendance workflow operates on.
// Business logic never calls time.Now directly so tests can pin the clock.
type Clock interface {
	Now() time.Time
	// Today returns the local calendar-date string for loc.
	Today(loc *time.Location) string
}

type systemClock struct{}

// System returns a Clock backed by the real wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return timeutil.FormatDate(time.Now().In(loc))
}

// Fixed is a settable Clock for tests.
type Fixed struct {
	Time time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Time
}

func (f *Fixed) Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return timeutil.FormatDate(f.Time.In(loc))
}
