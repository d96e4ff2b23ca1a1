package attendance

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half-day"
	StatusWeekend Status = "weekend"
	StatusHoliday Status = "holiday"
)

// Attendance is one record per (user, local calendar date). Check-in creates
// it with status present; checkout completes it exactly once. Date and the
// HH:MM strings are the employee's local wall clock, never UTC. Duplicate-day
// detection and worked-minutes math run on these strings, not on the audit
// timestamps.
type Attendance struct {
	ID             string
	UserID         string
	OrganizationID string
	Date           string // YYYY-MM-DD, dedup key together with UserID

	CheckInTime  *string // HH:MM, set at check-in
	CheckOutTime *string // HH:MM, nil until checkout, set exactly once

	Status Status

	Location         *geo.Coordinates
	CheckoutLocation *geo.Coordinates

	LocationVerified         bool
	CheckoutLocationVerified bool

	DistanceFromOffice         *int
	CheckoutDistanceFromOffice *int

	// OfficeLocation snapshots the geofence at check-in so later admin edits
	// don't rewrite history.
	OfficeLocation *organization.OfficeGeofence

	WorkedMinutes   *int
	OvertimeMinutes *int // may be negative (undertime)

	// Audit ordering only; business logic never reads these.
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
}

// Open reports whether the record is a session awaiting checkout.
func (a *Attendance) Open() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}
