package attendance

import "context"

// AttendanceRepository defines data access for attendance records. Every
// method takes orgID to keep tenants isolated at the query level.
type AttendanceRepository interface {
	// Create inserts a new record. The store enforces UNIQUE(user_id, date):
	// a conflicting insert writes nothing and returns ErrAlreadyCheckedIn,
	// which closes the read-then-write race between concurrent check-ins.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, orgID string) (Attendance, error)

	// GetByUserAndDate returns the record for (user, local date), or nil when
	// none exists.
	GetByUserAndDate(ctx context.Context, userID string, date string, orgID string) (*Attendance, error)

	// CompleteCheckout persists the checkout fields of att in one write,
	// guarded by check_out_time IS NULL. If the record is missing or already
	// closed nothing is written and ErrNoOpenSession is returned.
	CompleteCheckout(ctx context.Context, att Attendance) error

	List(ctx context.Context, filter AttendanceFilter, orgID string) ([]Attendance, int64, error)

	ListForUser(ctx context.Context, userID string, filter AttendanceFilter, orgID string) ([]Attendance, int64, error)

	// ListRange returns all records for one user between two local dates
	// inclusive, oldest first. Used by reporting.
	ListRange(ctx context.Context, userID string, orgID string, startDate, endDate string) ([]Attendance, error)

	// ListOpenBefore returns open sessions whose date is strictly before the
	// given local date. Used by the stale-session job.
	ListOpenBefore(ctx context.Context, date string) ([]Attendance, error)

	// ListUserIDsWithoutRecord returns active employees' user IDs with no
	// record on the given date. Used by the absent-fill job.
	ListUserIDsWithoutRecord(ctx context.Context, orgID string, date string) ([]string, error)
}
