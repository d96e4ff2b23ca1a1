package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")

	// Checkout errors
	ErrNoOpenSession = errors.New("no open attendance session to check out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutsideGeofenceError carries the measured distance and the allowed radius
// so the caller can render "you are Xm away, need to be within Rm".
type OutsideGeofenceError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("you are %dm from the office, need to be within %dm", e.DistanceMeters, e.RadiusMeters)
}
