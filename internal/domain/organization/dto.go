package organization

import (
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type OrganizationResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	Address              *string         `json:"address,omitempty"`
	Timezone             string          `json:"timezone"`
	ExpectedShiftMinutes int             `json:"expected_shift_minutes"`
	Geofence             *OfficeGeofence `json:"geofence,omitempty"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
}

type UpdateOrganizationRequest struct {
	Name                 *string `json:"name,omitempty"`
	Address              *string `json:"address,omitempty"`
	Timezone             *string `json:"timezone,omitempty"`
	ExpectedShiftMinutes *int    `json:"expected_shift_minutes,omitempty"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if r.ExpectedShiftMinutes != nil && (*r.ExpectedShiftMinutes < 1 || *r.ExpectedShiftMinutes > 24*60) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_shift_minutes",
			Message: "expected_shift_minutes must be between 1 and 1440",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateGeofenceRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r *UpdateGeofenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters < 1 || r.RadiusMeters > 100000 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 1 and 100000",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
