package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/clock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/geoattend/attendance-backend-go/internal/pkg/timeutil"
)

// staleCloseTime is the wall-clock time written to sessions the user never
// closed. Worked minutes stay unset so the day reads as an anomaly instead
// of an inflated shift.
const staleCloseTime = "23:59"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	orgRepo        organization.OrganizationRepository
	hub            *sse.Hub
	clk            clock.Clock
	db             *database.DB
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	orgRepo organization.OrganizationRepository,
	hub *sse.Hub,
	clk clock.Clock,
	db *database.DB,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		orgRepo:        orgRepo,
		hub:            hub,
		clk:            clk,
		db:             db,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// AutoCloseStaleSessions closes open sessions whose local date has passed in
// the organization's timezone and whose check-in is at least
// timeutil.AnomalyThreshold old. The age gate keeps a live overnight shift
// open: a 23:50 check-in is still a valid session at 00:10 and must stay
// available for a midnight-crossing checkout. Runs hourly and is idempotent.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	// Anything dated before today UTC+14 is a candidate. The per-org local
	// date check below decides whether the day has actually ended.
	maxAhead := j.clk.Now().UTC().Add(14 * time.Hour)
	stale, err := j.attendanceRepo.ListOpenBefore(ctx, timeutil.FormatDate(maxAhead))
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	orgs := make(map[string]organization.Organization)
	closedCount := 0

	for _, session := range stale {
		org, ok := orgs[session.OrganizationID]
		if !ok {
			org, err = j.orgRepo.GetByID(ctx, session.OrganizationID)
			if err != nil {
				slog.Error("Cron: Failed to load organization",
					"organization_id", session.OrganizationID,
					"error", err)
				continue
			}
			orgs[session.OrganizationID] = org
		}

		loc := timeutil.LoadLocation(org.Timezone)
		if session.Date >= j.clk.Today(loc) {
			// Still the same local day, the user may yet check out.
			continue
		}
		if session.CheckInTime != nil {
			inInstant, err := timeutil.Combine(session.Date, *session.CheckInTime, loc)
			if err == nil && j.clk.Now().Sub(inInstant) < timeutil.AnomalyThreshold {
				// Inside the plausible-session window the checkout path still
				// owns this record.
				continue
			}
		}

		closeTime := staleCloseTime
		session.CheckOutTime = &closeTime
		session.WorkedMinutes = nil
		session.OvertimeMinutes = nil
		session.CheckoutLocation = nil
		session.CheckoutLocationVerified = false
		session.CheckoutDistanceFromOffice = nil

		if err := j.attendanceRepo.CompleteCheckout(ctx, session); err != nil {
			if errors.Is(err, attendance.ErrNoOpenSession) {
				// Closed by a late checkout between the list and the update.
				continue
			}
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}

		j.hub.Publish(session.UserID, sse.Event{
			UserID: session.UserID,
			Event:  sse.EventSessionClosed,
			Data: map[string]interface{}{
				"attendance_id": session.ID,
				"date":          session.Date,
			},
		})

		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed stale sessions", "count", closedCount)
	}
	return nil
}

// MarkAbsentUsers writes an absent record for every active employee with no
// record on the previous local working day. The conditional insert makes the
// job safe to re-run and safe against a user checking in concurrently.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	rows, err := j.db.Pool.Query(ctx, `SELECT id, timezone FROM organizations`)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	type orgRow struct {
		id       string
		timezone string
	}
	var orgRows []orgRow
	for rows.Next() {
		var r orgRow
		if err := rows.Scan(&r.id, &r.timezone); err != nil {
			continue
		}
		orgRows = append(orgRows, r)
	}

	totalAbsent := 0

	for _, org := range orgRows {
		loc := timeutil.LoadLocation(org.timezone)
		nowLocal := j.clk.Now().In(loc)

		// Only fill during the first hours of the new local day, once the
		// previous day is definitively over.
		if nowLocal.Hour() >= 6 {
			continue
		}

		yesterdayLocal := nowLocal.AddDate(0, 0, -1)
		if wd := yesterdayLocal.Weekday(); wd == time.Saturday || wd == time.Sunday {
			// Weekends surface as synthetic rows in reports, not as records.
			continue
		}
		yesterdayStr := timeutil.FormatDate(yesterdayLocal)

		userIDs, err := j.attendanceRepo.ListUserIDsWithoutRecord(ctx, org.id, yesterdayStr)
		if err != nil {
			slog.Error("Cron: Failed to list users without record",
				"organization_id", org.id,
				"date", yesterdayStr,
				"error", err)
			continue
		}

		for _, userID := range userIDs {
			_, err := j.attendanceRepo.Create(ctx, attendance.Attendance{
				UserID:         userID,
				OrganizationID: org.id,
				Date:           yesterdayStr,
				Status:         attendance.StatusAbsent,
			})
			if err != nil {
				if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
					continue
				}
				slog.Error("Cron: Failed to create absence record",
					"organization_id", org.id,
					"user_id", userID,
					"date", yesterdayStr,
					"error", err)
				continue
			}
			totalAbsent++
		}
	}

	if totalAbsent > 0 {
		slog.Info("Cron: Marked absent users", "count", totalAbsent)
	}
	return nil
}
