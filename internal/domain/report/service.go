package report

import "context"

// ReportService builds attendance summaries for dashboards and exports.
// It reads the canonical record schema only. Writers that produce divergent
// shapes are normalized at the store boundary, not here.
type ReportService interface {
	// MonthlySummary returns one entry per calendar day of the month, with
	// synthetic weekend/absent fills for days that have no stored record.
	MonthlySummary(ctx context.Context, orgID string, req MonthlySummaryRequest) (MonthlySummaryResponse, error)
}
