package organization

import "context"

// OrganizationService defines business logic for tenant settings. Callers
// resolve orgID from their auth context and pass it explicitly.
type OrganizationService interface {
	Get(ctx context.Context, orgID string) (OrganizationResponse, error)

	Update(ctx context.Context, orgID string, req UpdateOrganizationRequest) (OrganizationResponse, error)

	// UpdateGeofence sets the office location and radius used to verify
	// every subsequent check-in and checkout.
	UpdateGeofence(ctx context.Context, orgID string, req UpdateGeofenceRequest) (OrganizationResponse, error)
}
