package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/auth"
	"github.com/geoattend/attendance-backend-go/internal/domain/employee"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/domain/user"
	"github.com/geoattend/attendance-backend-go/internal/pkg/location"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejection carries the measured distance so clients can show
	// "you are Xm away, need to be within Ym".
	var geofenceErr *attendance.OutsideGeofenceError
	if errors.As(err, &geofenceErr) {
		UnprocessableEntity(w, "OUTSIDE_GEOFENCE", geofenceErr.Error(), map[string]string{
			"distance_meters": strconv.Itoa(geofenceErr.DistanceMeters),
			"radius_meters":   strconv.Itoa(geofenceErr.RadiusMeters),
		})
		return
	}

	// Browser geolocation failures all collapse to one actionable message.
	if location.IsAcquisitionError(err) {
		BadRequest(w, "Unable to get your location. Please enable GPS.", nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	// User domain errors
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrSlugExists):
		Conflict(w, "Organization slug already taken")
	case errors.Is(err, organization.ErrGeofenceNotConfigured):
		UnprocessableEntity(w, "GEOFENCE_NOT_CONFIGURED",
			"Office location has not been configured. Ask an admin to set it up.", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open session to check out of")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this organization")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
