package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSlugExists           = errors.New("organization slug already taken")

	// ErrGeofenceNotConfigured is fatal to check-in/checkout: with no office
	// location on file there is nothing to verify against, and guessing a
	// default location would let anyone check in from anywhere.
	ErrGeofenceNotConfigured = errors.New("organization has no office geofence configured")
)
