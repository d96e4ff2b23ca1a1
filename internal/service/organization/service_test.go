package organization

import (
	"context"
	"testing"

	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrgRepo struct {
	organization.OrganizationRepository
	org organization.Organization
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	if f.org.ID != id {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return f.org, nil
}

func (f *fakeOrgRepo) Update(ctx context.Context, id string, req organization.UpdateOrganizationRequest) error {
	if f.org.ID != id {
		return organization.ErrOrganizationNotFound
	}
	if req.Name != nil {
		f.org.Name = *req.Name
	}
	if req.Timezone != nil {
		f.org.Timezone = *req.Timezone
	}
	if req.ExpectedShiftMinutes != nil {
		f.org.ExpectedShiftMinutes = *req.ExpectedShiftMinutes
	}
	return nil
}

func (f *fakeOrgRepo) UpdateGeofence(ctx context.Context, id string, fence organization.OfficeGeofence) error {
	if f.org.ID != id {
		return organization.ErrOrganizationNotFound
	}
	f.org.Geofence = &fence
	return nil
}

func TestUpdateGeofence_BroadcastsToAllSubscribers(t *testing.T) {
	repo := &fakeOrgRepo{org: organization.Organization{ID: "org-1", Name: "Org", Timezone: "UTC"}}
	hub := sse.NewHub()
	svc := NewOrganizationService(repo, hub)

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	result, err := svc.UpdateGeofence(context.Background(), "org-1", organization.UpdateGeofenceRequest{
		Latitude:     37.7749,
		Longitude:    -122.4194,
		RadiusMeters: 150,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Geofence)
	assert.Equal(t, 150, result.Geofence.RadiusMeters)

	for _, ch := range []chan sse.Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, sse.EventGeofenceUpdated, event.Event)
		default:
			t.Fatal("expected every subscriber to see the geofence update")
		}
	}
}

func TestUpdateGeofence_InvalidRadius(t *testing.T) {
	repo := &fakeOrgRepo{org: organization.Organization{ID: "org-1", Timezone: "UTC"}}
	svc := NewOrganizationService(repo, sse.NewHub())

	_, err := svc.UpdateGeofence(context.Background(), "org-1", organization.UpdateGeofenceRequest{
		Latitude:     37.7749,
		Longitude:    -122.4194,
		RadiusMeters: 0,
	})
	require.Error(t, err)
}

func TestUpdate_MergesFields(t *testing.T) {
	repo := &fakeOrgRepo{org: organization.Organization{
		ID:                   "org-1",
		Name:                 "Old Name",
		Timezone:             "UTC",
		ExpectedShiftMinutes: 480,
	}}
	svc := NewOrganizationService(repo, sse.NewHub())

	name := "New Name"
	shift := 420
	result, err := svc.Update(context.Background(), "org-1", organization.UpdateOrganizationRequest{
		Name:                 &name,
		ExpectedShiftMinutes: &shift,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", result.Name)
	assert.Equal(t, 420, result.ExpectedShiftMinutes)
	assert.Equal(t, "UTC", result.Timezone)
}

func TestUpdate_InvalidTimezone(t *testing.T) {
	repo := &fakeOrgRepo{org: organization.Organization{ID: "org-1", Timezone: "UTC"}}
	svc := NewOrganizationService(repo, sse.NewHub())

	tz := "Mars/Olympus_Mons"
	_, err := svc.Update(context.Background(), "org-1", organization.UpdateOrganizationRequest{
		Timezone: &tz,
	})
	require.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeOrgRepo{org: organization.Organization{ID: "org-1"}}
	svc := NewOrganizationService(repo, sse.NewHub())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, organization.ErrOrganizationNotFound)
}
