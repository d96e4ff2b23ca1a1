package attendance

import "context"

// AttendanceService is the check-in/checkout workflow engine. userID and
// orgID are explicit parameters: handlers resolve them from the request's
// auth claims, services never dig into ambient session state.
type AttendanceService interface {
	// CheckIn verifies the caller's location against the organization
	// geofence and creates today's record. Exactly one store write on
	// success, zero on any failure.
	CheckIn(ctx context.Context, userID, orgID string, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut completes today's open session, re-verifying the location
	// against the current geofence and computing worked/overtime minutes.
	CheckOut(ctx context.Context, userID, orgID string, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the calling employee.
	GetMyAttendance(ctx context.Context, userID, orgID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin).
	ListAttendance(ctx context.Context, orgID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID.
	GetAttendance(ctx context.Context, id string, orgID string) (AttendanceResponse, error)
}
