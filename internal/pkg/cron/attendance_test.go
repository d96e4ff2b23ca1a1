package cron

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/clock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	open      []attendance.Attendance
	completed []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, date string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.open {
		if att.Date < date {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CompleteCheckout(ctx context.Context, att attendance.Attendance) error {
	f.completed = append(f.completed, att)
	return nil
}

type fakeOrgRepo struct {
	organization.OrganizationRepository
	orgs map[string]organization.Organization
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return org, nil
}

func checkInAt(hhmm string) *string {
	return &hhmm
}

func TestAutoCloseStaleSessions(t *testing.T) {
	// 2025-03-11 10:00 UTC.
	clk := &clock.Fixed{Time: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)}

	attRepo := &fakeAttendanceRepo{open: []attendance.Attendance{
		{
			ID:             "att-stale",
			UserID:         "user-1",
			OrganizationID: "org-1",
			Date:           "2025-03-10",
			CheckInTime:    checkInAt("09:00"),
		},
		{
			ID:             "att-today",
			UserID:         "user-2",
			OrganizationID: "org-1",
			Date:           "2025-03-11",
			CheckInTime:    checkInAt("09:00"),
		},
	}}
	orgRepo := &fakeOrgRepo{orgs: map[string]organization.Organization{
		"org-1": {ID: "org-1", Timezone: "UTC"},
	}}
	hub := sse.NewHub()

	events, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	jobs := NewAttendanceJobs(attRepo, orgRepo, hub, clk, nil)
	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

	// Only yesterday's session is closed, with the stale sentinel time and
	// no worked minutes.
	require.Len(t, attRepo.completed, 1)
	closed := attRepo.completed[0]
	assert.Equal(t, "att-stale", closed.ID)
	require.NotNil(t, closed.CheckOutTime)
	assert.Equal(t, "23:59", *closed.CheckOutTime)
	assert.Nil(t, closed.WorkedMinutes)
	assert.Nil(t, closed.OvertimeMinutes)

	select {
	case event := <-events:
		assert.Equal(t, sse.EventSessionClosed, event.Event)
	default:
		t.Fatal("expected a session_closed event")
	}
}

func TestAutoCloseStaleSessions_RespectsOrgTimezone(t *testing.T) {
	// 2025-03-11 02:00 UTC is still 2025-03-10 in Los Angeles, so the open
	// session from the 10th is not stale there yet.
	clk := &clock.Fixed{Time: time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)}

	attRepo := &fakeAttendanceRepo{open: []attendance.Attendance{
		{
			ID:             "att-1",
			UserID:         "user-1",
			OrganizationID: "org-la",
			Date:           "2025-03-10",
			CheckInTime:    checkInAt("09:00"),
		},
	}}
	orgRepo := &fakeOrgRepo{orgs: map[string]organization.Organization{
		"org-la": {ID: "org-la", Timezone: "America/Los_Angeles"},
	}}

	jobs := NewAttendanceJobs(attRepo, orgRepo, sse.NewHub(), clk, nil)
	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

	assert.Empty(t, attRepo.completed)
}

func TestAutoCloseStaleSessions_KeepsLiveOvernightSession(t *testing.T) {
	// Five past midnight. The 23:50 check-in from yesterday's date is a live
	// overnight shift, fifteen minutes in; the checkout path still owns it.
	clk := &clock.Fixed{Time: time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC)}

	attRepo := &fakeAttendanceRepo{open: []attendance.Attendance{
		{
			ID:             "att-overnight",
			UserID:         "user-1",
			OrganizationID: "org-1",
			Date:           "2025-03-10",
			CheckInTime:    checkInAt("23:50"),
		},
	}}
	orgRepo := &fakeOrgRepo{orgs: map[string]organization.Organization{
		"org-1": {ID: "org-1", Timezone: "UTC"},
	}}

	jobs := NewAttendanceJobs(attRepo, orgRepo, sse.NewHub(), clk, nil)
	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

	assert.Empty(t, attRepo.completed)
}

func TestAutoCloseStaleSessions_ClosesAfterAnomalyWindow(t *testing.T) {
	// Same overnight session, but the check-in is now more than 18 hours in
	// the past. Nobody works a shift that long; close it.
	clk := &clock.Fixed{Time: time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC)}

	attRepo := &fakeAttendanceRepo{open: []attendance.Attendance{
		{
			ID:             "att-overnight",
			UserID:         "user-1",
			OrganizationID: "org-1",
			Date:           "2025-03-10",
			CheckInTime:    checkInAt("23:50"),
		},
	}}
	orgRepo := &fakeOrgRepo{orgs: map[string]organization.Organization{
		"org-1": {ID: "org-1", Timezone: "UTC"},
	}}

	jobs := NewAttendanceJobs(attRepo, orgRepo, sse.NewHub(), clk, nil)
	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

	require.Len(t, attRepo.completed, 1)
	assert.Equal(t, "att-overnight", attRepo.completed[0].ID)
	assert.Nil(t, attRepo.completed[0].WorkedMinutes)
}

func TestAutoCloseStaleSessions_NothingOpen(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)}
	attRepo := &fakeAttendanceRepo{}
	jobs := NewAttendanceJobs(attRepo, &fakeOrgRepo{}, sse.NewHub(), clk, nil)

	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))
	assert.Empty(t, attRepo.completed)
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	ran := 0
	scheduler.AddJob("test_job", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
