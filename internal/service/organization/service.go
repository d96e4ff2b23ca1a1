package organization

import (
	"context"
	"fmt"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
	hub *sse.Hub
}

func NewOrganizationService(orgRepo organization.OrganizationRepository, hub *sse.Hub) organization.OrganizationService {
	return &OrganizationServiceImpl{
		OrganizationRepository: orgRepo,
		hub:                    hub,
	}
}

// Get implements organization.OrganizationService.
func (o *OrganizationServiceImpl) Get(ctx context.Context, orgID string) (organization.OrganizationResponse, error) {
	org, err := o.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}
	return toResponse(org), nil
}

// Update implements organization.OrganizationService.
func (o *OrganizationServiceImpl) Update(ctx context.Context, orgID string, req organization.UpdateOrganizationRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	if err := o.OrganizationRepository.Update(ctx, orgID, req); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := o.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to reload organization: %w", err)
	}

	return toResponse(org), nil
}

// UpdateGeofence implements organization.OrganizationService. Existing
// attendance records keep their check-in snapshot; only future verifications
// see the new perimeter.
func (o *OrganizationServiceImpl) UpdateGeofence(ctx context.Context, orgID string, req organization.UpdateGeofenceRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	fence := organization.OfficeGeofence{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	if err := o.OrganizationRepository.UpdateGeofence(ctx, orgID, fence); err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := o.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to reload organization: %w", err)
	}

	o.hub.Broadcast(sse.Event{
		Event: sse.EventGeofenceUpdated,
		Data: map[string]interface{}{
			"organization_id": orgID,
			"geofence":        fence,
		},
	})

	return toResponse(org), nil
}

func toResponse(org organization.Organization) organization.OrganizationResponse {
	return organization.OrganizationResponse{
		ID:                   org.ID,
		Name:                 org.Name,
		Slug:                 org.Slug,
		Address:              org.Address,
		Timezone:             org.Timezone,
		ExpectedShiftMinutes: org.ExpectedShiftMinutes,
		Geofence:             org.Geofence,
		CreatedAt:            org.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            org.UpdatedAt.Format(time.RFC3339),
	}
}
