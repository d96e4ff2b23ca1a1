package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/clock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/geoattend/attendance-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	organization.OrganizationRepository
	hub *sse.Hub
	clk clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	orgRepo organization.OrganizationRepository,
	hub *sse.Hub,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		OrganizationRepository: orgRepo,
		hub:                    hub,
		clk:                    clk,
	}
}

// loadGeofence resolves the organization and refuses to proceed without a
// configured geofence. There is no fallback office location: verifying a
// check-in against a made-up coordinate would record garbage as fact.
func (a *AttendanceServiceImpl) loadGeofence(ctx context.Context, orgID string) (organization.Organization, *organization.OfficeGeofence, error) {
	org, err := a.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return organization.Organization{}, nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org.Geofence == nil {
		return organization.Organization{}, nil, organization.ErrGeofenceNotConfigured
	}
	return org, org.Geofence, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	org, fence, err := a.loadGeofence(ctx, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := timeutil.LoadLocation(org.Timezone)
	nowLocal := a.clk.Now().In(loc)
	dateLocal := timeutil.FormatDate(nowLocal)

	// Fast path for the common double-tap. The conditional insert below is
	// what actually guarantees one record per day.
	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, dateLocal, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	office := geo.Coordinates{Latitude: fence.Latitude, Longitude: fence.Longitude}
	verification := geo.Verify(req.Coordinates(), office, fence.RadiusMeters)
	if !verification.WithinRadius {
		return attendance.AttendanceResponse{}, &attendance.OutsideGeofenceError{
			DistanceMeters: verification.DistanceMeters,
			RadiusMeters:   fence.RadiusMeters,
		}
	}

	checkInTime := timeutil.FormatTime(nowLocal)
	userCoords := req.Coordinates()
	fenceSnapshot := *fence

	data := attendance.Attendance{
		UserID:             userID,
		OrganizationID:     orgID,
		Date:               dateLocal,
		CheckInTime:        &checkInTime,
		Status:             attendance.StatusPresent,
		Location:           &userCoords,
		LocationVerified:   true,
		DistanceFromOffice: &verification.DistanceMeters,

		// Snapshot so later geofence edits don't rewrite this record's story.
		OfficeLocation: &fenceSnapshot,
	}

	result, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		// ErrAlreadyCheckedIn surfaces as-is when a concurrent check-in won.
		return attendance.AttendanceResponse{}, err
	}

	a.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  sse.EventCheckedIn,
		Data: map[string]interface{}{
			"attendance_id": result.ID,
			"date":          result.Date,
			"check_in_time": checkInTime,
		},
	})

	return toResponse(result), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID, orgID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	org, fence, err := a.loadGeofence(ctx, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := timeutil.LoadLocation(org.Timezone)
	nowLocal := a.clk.Now().In(loc)

	var record attendance.Attendance
	if req.RecordID != nil {
		record, err = a.AttendanceRepository.GetByID(ctx, *req.RecordID, orgID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if record.UserID != userID {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
	} else {
		found, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, timeutil.FormatDate(nowLocal), orgID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if found == nil || !found.Open() {
			// A shift that started before midnight is still keyed to
			// yesterday's date. Fall back to it before giving up.
			yesterday := timeutil.FormatDate(nowLocal.AddDate(0, 0, -1))
			found, err = a.AttendanceRepository.GetByUserAndDate(ctx, userID, yesterday, orgID)
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to get yesterday's attendance: %w", err)
			}
		}
		if found == nil {
			return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
		}
		record = *found
	}

	if !record.Open() {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
	}

	// Checkout verifies against the current geofence, not the check-in
	// snapshot. If the admin moved the office during the day, checkout
	// answers "is the user at the office now".
	office := geo.Coordinates{Latitude: fence.Latitude, Longitude: fence.Longitude}
	verification := geo.Verify(req.Coordinates(), office, fence.RadiusMeters)
	if !verification.WithinRadius {
		return attendance.AttendanceResponse{}, &attendance.OutsideGeofenceError{
			DistanceMeters: verification.DistanceMeters,
			RadiusMeters:   fence.RadiusMeters,
		}
	}

	checkOutTime := timeutil.FormatTime(nowLocal)
	userCoords := req.Coordinates()

	record.CheckOutTime = &checkOutTime
	record.CheckoutLocation = &userCoords
	record.CheckoutLocationVerified = true
	record.CheckoutDistanceFromOffice = &verification.DistanceMeters

	if worked, ok := a.computeWorkedMinutes(record, nowLocal, loc); ok {
		expectedShift := org.ExpectedShiftMinutes
		if req.ExpectedShiftMinutes != nil {
			expectedShift = *req.ExpectedShiftMinutes
		}
		overtime := worked - expectedShift
		record.WorkedMinutes = &worked
		record.OvertimeMinutes = &overtime
	}

	if err := a.AttendanceRepository.CompleteCheckout(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  sse.EventCheckedOut,
		Data: map[string]interface{}{
			"attendance_id":  record.ID,
			"date":           record.Date,
			"check_out_time": checkOutTime,
			"worked_minutes": record.WorkedMinutes,
		},
	})

	return toResponse(record), nil
}

// computeWorkedMinutes rebuilds the check-in instant from the stored date
// and time strings and measures against the actual checkout instant, so a
// checkout arriving days after the check-in reads as an anomaly instead of
// wrapping around to a short session.
func (a *AttendanceServiceImpl) computeWorkedMinutes(record attendance.Attendance, checkOut time.Time, loc *time.Location) (int, bool) {
	if record.CheckInTime == nil {
		return 0, false
	}
	inInstant, err := timeutil.Combine(record.Date, *record.CheckInTime, loc)
	if err != nil {
		return 0, false
	}
	return timeutil.WorkedMinutes(inInstant, checkOut.Truncate(time.Minute))
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID, orgID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, totalCount, err := a.AttendanceRepository.ListForUser(ctx, userID, filter, orgID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toListResponse(records, totalCount, filter), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, orgID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, totalCount, err := a.AttendanceRepository.List(ctx, filter, orgID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toListResponse(records, totalCount, filter), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string, orgID string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(record), nil
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             att.ID,
		UserID:         att.UserID,
		OrganizationID: att.OrganizationID,
		EmployeeName:   att.EmployeeName,
		Date:           att.Date,
		Status:         string(att.Status),

		CheckInTime:  att.CheckInTime,
		CheckOutTime: att.CheckOutTime,

		Location:         att.Location,
		CheckoutLocation: att.CheckoutLocation,

		LocationVerified:         att.LocationVerified,
		CheckoutLocationVerified: att.CheckoutLocationVerified,

		DistanceFromOffice:         att.DistanceFromOffice,
		CheckoutDistanceFromOffice: att.CheckoutDistanceFromOffice,

		OfficeLocation: att.OfficeLocation,

		WorkedMinutes:   att.WorkedMinutes,
		OvertimeMinutes: att.OvertimeMinutes,

		CreatedAt: att.CreatedAt.Format(time.RFC3339),
		UpdatedAt: att.UpdatedAt.Format(time.RFC3339),
	}
}

func toListResponse(records []attendance.Attendance, totalCount int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	totalPages := int((totalCount + int64(filter.Limit) - 1) / int64(filter.Limit))

	showingStart := (filter.Page-1)*filter.Limit + 1
	showingEnd := showingStart + len(records) - 1
	showing := fmt.Sprintf("%d-%d of %d", showingStart, showingEnd, totalCount)
	if len(records) == 0 {
		showing = fmt.Sprintf("0 of %d", totalCount)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  totalCount,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}
