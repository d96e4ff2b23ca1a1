package organization

import "context"

type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)

	GetByID(ctx context.Context, id string) (Organization, error)

	GetBySlug(ctx context.Context, slug string) (Organization, error)

	ExistsByIDOrSlug(ctx context.Context, id *string, slug *string) (bool, error)

	Update(ctx context.Context, id string, req UpdateOrganizationRequest) error

	// UpdateGeofence replaces the office geofence wholesale.
	UpdateGeofence(ctx context.Context, id string, fence OfficeGeofence) error
}
