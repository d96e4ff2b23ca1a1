package organization

import "time"

// OfficeGeofence is the check-in perimeter for an organization's office.
// Admin-mutated; the attendance workflow only reads it and snapshots it into
// each record at write time.
type OfficeGeofence struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

// DefaultExpectedShiftMinutes is the shift length new organizations start
// with (8 hours). Admins can change it, checkouts can override it per call.
const DefaultExpectedShiftMinutes = 8 * 60

type Organization struct {
	ID       string
	Name     string
	Slug     string
	Address  *string
	Timezone string // IANA name; local date/time strings are computed in it

	// ExpectedShiftMinutes is the default shift length used for overtime
	// math when a checkout doesn't override it.
	ExpectedShiftMinutes int

	Geofence *OfficeGeofence // nil until an admin configures it

	CreatedAt time.Time
	UpdatedAt time.Time
}
