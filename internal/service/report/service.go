package report

import (
	"context"
	"fmt"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/pkg/clock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/timeutil"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	organization.OrganizationRepository
	clk clock.Clock
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	orgRepo organization.OrganizationRepository,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository:   attendanceRepo,
		OrganizationRepository: orgRepo,
		clk:                    clk,
	}
}

// MonthlySummary implements report.ReportService. Every calendar day of the
// month up to today gets exactly one entry: the stored record when one
// exists, otherwise a synthetic weekend or absent fill. Future days are
// omitted rather than guessed at.
func (r *ReportServiceImpl) MonthlySummary(ctx context.Context, orgID string, req report.MonthlySummaryRequest) (report.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlySummaryResponse{}, err
	}

	org, err := r.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return report.MonthlySummaryResponse{}, fmt.Errorf("failed to get organization: %w", err)
	}

	loc := timeutil.LoadLocation(org.Timezone)
	today := r.clk.Today(loc)

	firstDay, err := time.ParseInLocation("2006-01", req.Month, loc)
	if err != nil {
		return report.MonthlySummaryResponse{}, fmt.Errorf("failed to parse month: %w", err)
	}
	lastDay := firstDay.AddDate(0, 1, -1)

	startDate := timeutil.FormatDate(firstDay)
	endDate := timeutil.FormatDate(lastDay)

	records, err := r.AttendanceRepository.ListRange(ctx, req.UserID, orgID, startDate, endDate)
	if err != nil {
		return report.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance range: %w", err)
	}

	byDate := make(map[string]attendance.Attendance, len(records))
	for _, record := range records {
		byDate[record.Date] = record
	}

	response := report.MonthlySummaryResponse{
		UserID:       req.UserID,
		Month:        req.Month,
		Days:         make([]report.DaySummary, 0, lastDay.Day()),
		StatusCounts: make(map[string]int),
	}

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		date := timeutil.FormatDate(day)
		if date > today {
			break
		}

		var summary report.DaySummary
		if record, ok := byDate[date]; ok {
			summary = report.DaySummary{
				Date:            date,
				Status:          string(record.Status),
				CheckInTime:     record.CheckInTime,
				CheckOutTime:    record.CheckOutTime,
				WorkedMinutes:   record.WorkedMinutes,
				OvertimeMinutes: record.OvertimeMinutes,
			}
			if record.WorkedMinutes != nil {
				response.TotalWorkedMinutes += *record.WorkedMinutes
			}
			if record.OvertimeMinutes != nil {
				response.TotalOvertimeMinutes += *record.OvertimeMinutes
			}
		} else {
			status := attendance.StatusAbsent
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				status = attendance.StatusWeekend
			}
			summary = report.DaySummary{
				Date:      date,
				Status:    string(status),
				Synthetic: true,
			}
		}

		response.Days = append(response.Days, summary)
		response.StatusCounts[summary.Status]++
	}

	return response, nil
}
