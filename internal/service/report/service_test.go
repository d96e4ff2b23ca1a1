package report

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
)

// stubAttendanceRepo serves a fixed slice from ListRange. The report service
// touches no other repository method.
type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (s *stubAttendanceRepo) ListRange(ctx context.Context, userID string, orgID string, startDate, endDate string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range s.records {
		if att.UserID == userID && att.OrganizationID == orgID && att.Date >= startDate && att.Date <= endDate {
			out = append(out, att)
		}
	}
	return out, nil
}

type stubOrgRepo struct {
	organization.OrganizationRepository
	org organization.Organization
}

func (s *stubOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	if s.org.ID != id {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return s.org, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func storedDay(date string, worked, overtime int) attendance.Attendance {
	return attendance.Attendance{
		UserID:          testUserID,
		OrganizationID:  testOrgID,
		Date:            date,
		Status:          attendance.StatusPresent,
		CheckInTime:     strPtr("09:00"),
		CheckOutTime:    strPtr("17:00"),
		WorkedMinutes:   intPtr(worked),
		OvertimeMinutes: intPtr(overtime),
	}
}

func TestMonthlySummary_FillsWeekendsAndAbsences(t *testing.T) {
	// March 2025 starts on a Saturday. Clock pinned mid-month.
	clk := &clock.Fixed{Time: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)}
	attRepo := &stubAttendanceRepo{records: []attendance.Attendance{
		storedDay("2025-03-03", 480, 0),
		storedDay("2025-03-04", 510, 30),
	}}
	orgRepo := &stubOrgRepo{org: organization.Organization{ID: testOrgID, Timezone: "UTC"}}
	svc := NewReportService(attRepo, orgRepo, clk)

	result, err := svc.MonthlySummary(context.Background(), testOrgID, report.MonthlySummaryRequest{
		UserID: testUserID,
		Month:  "2025-03",
	})
	require.NoError(t, err)

	// Days 13-31 are in the future and omitted.
	require.Len(t, result.Days, 12)
	assert.Equal(t, "2025-03-01", result.Days[0].Date)
	assert.Equal(t, "2025-03-12", result.Days[11].Date)

	// Mar 1-2 and 8-9 are weekends.
	assert.Equal(t, "weekend", result.Days[0].Status)
	assert.True(t, result.Days[0].Synthetic)
	assert.Equal(t, "weekend", result.Days[8].Status)

	// Stored records pass through untouched.
	mon := result.Days[2]
	assert.Equal(t, "2025-03-03", mon.Date)
	assert.Equal(t, "present", mon.Status)
	assert.False(t, mon.Synthetic)
	require.NotNil(t, mon.CheckInTime)
	assert.Equal(t, "09:00", *mon.CheckInTime)

	// Weekdays without a record are synthesized absent.
	wed := result.Days[4]
	assert.Equal(t, "2025-03-05", wed.Date)
	assert.Equal(t, "absent", wed.Status)
	assert.True(t, wed.Synthetic)
	assert.Nil(t, wed.CheckInTime)
	assert.Nil(t, wed.WorkedMinutes)

	assert.Equal(t, 990, result.TotalWorkedMinutes)
	assert.Equal(t, 30, result.TotalOvertimeMinutes)
	assert.Equal(t, map[string]int{
		"present": 2,
		"weekend": 4,
		"absent":  6,
	}, result.StatusCounts)
}

func TestMonthlySummary_PastMonthCoversEveryDay(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)}
	attRepo := &stubAttendanceRepo{}
	orgRepo := &stubOrgRepo{org: organization.Organization{ID: testOrgID, Timezone: "UTC"}}
	svc := NewReportService(attRepo, orgRepo, clk)

	result, err := svc.MonthlySummary(context.Background(), testOrgID, report.MonthlySummaryRequest{
		UserID: testUserID,
		Month:  "2025-02",
	})
	require.NoError(t, err)

	assert.Len(t, result.Days, 28)
	assert.Equal(t, 0, result.TotalWorkedMinutes)
	for _, day := range result.Days {
		assert.True(t, day.Synthetic)
	}
}

func TestMonthlySummary_OpenSessionCountsNoMinutes(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)}
	attRepo := &stubAttendanceRepo{records: []attendance.Attendance{
		{
			UserID:         testUserID,
			OrganizationID: testOrgID,
			Date:           "2025-03-12",
			Status:         attendance.StatusPresent,
			CheckInTime:    strPtr("09:00"),
		},
	}}
	orgRepo := &stubOrgRepo{org: organization.Organization{ID: testOrgID, Timezone: "UTC"}}
	svc := NewReportService(attRepo, orgRepo, clk)

	result, err := svc.MonthlySummary(context.Background(), testOrgID, report.MonthlySummaryRequest{
		UserID: testUserID,
		Month:  "2025-03",
	})
	require.NoError(t, err)

	today := result.Days[len(result.Days)-1]
	assert.Equal(t, "present", today.Status)
	assert.Nil(t, today.CheckOutTime)
	assert.Equal(t, 0, result.TotalWorkedMinutes)
}

func TestMonthlySummary_InvalidMonth(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)}
	svc := NewReportService(&stubAttendanceRepo{}, &stubOrgRepo{org: organization.Organization{ID: testOrgID, Timezone: "UTC"}}, clk)

	_, err := svc.MonthlySummary(context.Background(), testOrgID, report.MonthlySummaryRequest{
		UserID: testUserID,
		Month:  "March 2025",
	})
	require.Error(t, err)
}
