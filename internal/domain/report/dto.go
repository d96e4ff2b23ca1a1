package report

import (
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type MonthlySummaryRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"` // YYYY-MM
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Month + "-01"); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DaySummary is one calendar day in a monthly report. Days with no stored
// record are synthesized: weekend on Saturday/Sunday, absent otherwise.
// Synthetic days carry no times or distances.
type DaySummary struct {
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	CheckInTime     *string `json:"check_in_time,omitempty"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	WorkedMinutes   *int    `json:"worked_minutes,omitempty"`
	OvertimeMinutes *int    `json:"overtime_minutes,omitempty"`
	Synthetic       bool    `json:"synthetic"`
}

type MonthlySummaryResponse struct {
	UserID string       `json:"user_id"`
	Month  string       `json:"month"`
	Days   []DaySummary `json:"days"`

	TotalWorkedMinutes   int            `json:"total_worked_minutes"`
	TotalOvertimeMinutes int            `json:"total_overtime_minutes"`
	StatusCounts         map[string]int `json:"status_counts"`
}
