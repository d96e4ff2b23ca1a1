package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, organization_id, date, check_in_time, check_out_time, status,
	latitude, longitude, location_verified, distance_from_office,
	checkout_latitude, checkout_longitude, checkout_location_verified, checkout_distance_from_office,
	office_latitude, office_longitude, office_radius_meters,
	worked_minutes, overtime_minutes, created_at, updated_at
`

// attendanceRow flattens the nullable coordinate pairs of a record so they
// scan straight out of the row before being folded back into the entity.
type attendanceRow struct {
	att attendance.Attendance

	lat, lng                 *float64
	checkoutLat, checkoutLng *float64
	officeLat, officeLng     *float64
	officeRadius             *int
}

func (r *attendanceRow) dest() []interface{} {
	return []interface{}{
		&r.att.ID, &r.att.UserID, &r.att.OrganizationID, &r.att.Date,
		&r.att.CheckInTime, &r.att.CheckOutTime, &r.att.Status,
		&r.lat, &r.lng, &r.att.LocationVerified, &r.att.DistanceFromOffice,
		&r.checkoutLat, &r.checkoutLng, &r.att.CheckoutLocationVerified, &r.att.CheckoutDistanceFromOffice,
		&r.officeLat, &r.officeLng, &r.officeRadius,
		&r.att.WorkedMinutes, &r.att.OvertimeMinutes, &r.att.CreatedAt, &r.att.UpdatedAt,
	}
}

func (r *attendanceRow) entity() attendance.Attendance {
	if r.lat != nil && r.lng != nil {
		r.att.Location = &geo.Coordinates{Latitude: *r.lat, Longitude: *r.lng}
	}
	if r.checkoutLat != nil && r.checkoutLng != nil {
		r.att.CheckoutLocation = &geo.Coordinates{Latitude: *r.checkoutLat, Longitude: *r.checkoutLng}
	}
	if r.officeLat != nil && r.officeLng != nil && r.officeRadius != nil {
		r.att.OfficeLocation = &organization.OfficeGeofence{
			Latitude:     *r.officeLat,
			Longitude:    *r.officeLng,
			RadiusMeters: *r.officeRadius,
		}
	}
	return r.att
}

func coordsParts(c *geo.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Latitude, &c.Longitude
}

func geofenceParts(g *organization.OfficeGeofence) (lat, lng *float64, radius *int) {
	if g == nil {
		return nil, nil, nil
	}
	return &g.Latitude, &g.Longitude, &g.RadiusMeters
}

// Create implements attendance.AttendanceRepository. The ON CONFLICT clause
// rides on UNIQUE(user_id, date): a losing concurrent insert writes nothing,
// RETURNING yields no row, and the caller gets ErrAlreadyCheckedIn.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, user_id, organization_id, date, check_in_time, status,
			latitude, longitude, location_verified, distance_from_office,
			office_latitude, office_longitude, office_radius_meters
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	att.ID = uuid.New().String()
	lat, lng := coordsParts(att.Location)
	officeLat, officeLng, officeRadius := geofenceParts(att.OfficeLocation)

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.OrganizationID,
		att.Date,
		att.CheckInTime,
		att.Status,
		lat,
		lng,
		att.LocationVerified,
		att.DistanceFromOffice,
		officeLat,
		officeLng,
		officeRadius,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, orgID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1
		  AND organization_id = $2
		LIMIT 1
	`

	var row attendanceRow
	err := q.QueryRow(ctx, query, id, orgID).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return row.entity(), nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string, orgID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND date = $2
		  AND organization_id = $3
		LIMIT 1
	`

	var row attendanceRow
	err := q.QueryRow(ctx, query, userID, date, orgID).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	att := row.entity()
	return &att, nil
}

// CompleteCheckout implements attendance.AttendanceRepository. The
// check_out_time IS NULL guard makes the close single-shot: a second checkout
// or a racing stale-close job matches zero rows and gets ErrNoOpenSession.
func (a *attendanceRepository) CompleteCheckout(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
			checkout_latitude = $2,
			checkout_longitude = $3,
			checkout_location_verified = $4,
			checkout_distance_from_office = $5,
			worked_minutes = $6,
			overtime_minutes = $7,
			status = $8,
			updated_at = NOW()
		WHERE id = $9
		  AND organization_id = $10
		  AND check_out_time IS NULL
	`

	checkoutLat, checkoutLng := coordsParts(att.CheckoutLocation)

	tag, err := q.Exec(ctx, query,
		att.CheckOutTime,
		checkoutLat,
		checkoutLng,
		att.CheckoutLocationVerified,
		att.CheckoutDistanceFromOffice,
		att.WorkedMinutes,
		att.OvertimeMinutes,
		att.Status,
		att.ID,
		att.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete checkout: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenSession
	}

	return nil
}

var attendanceSortColumns = map[string]string{
	"date":           "a.date",
	"check_in_time":  "a.check_in_time",
	"check_out_time": "a.check_out_time",
	"status":         "a.status",
	"created_at":     "a.created_at",
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.organization_id = $1"}
	args := []interface{}{orgID}
	argIdx := 2

	if filter.UserID != nil && *filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + whereClause

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortColumn, ok := attendanceSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "a.date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.organization_id, a.date, a.check_in_time, a.check_out_time, a.status,
			   a.latitude, a.longitude, a.location_verified, a.distance_from_office,
			   a.checkout_latitude, a.checkout_longitude, a.checkout_location_verified, a.checkout_distance_from_office,
			   a.office_latitude, a.office_longitude, a.office_radius_meters,
			   a.worked_minutes, a.overtime_minutes, a.created_at, a.updated_at,
			   e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.user_id = a.user_id AND e.organization_id = a.organization_id
		WHERE %s
		ORDER BY %s %s, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var row attendanceRow
		dest := append(row.dest(), &row.att.EmployeeName)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		attendances = append(attendances, row.entity())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return attendances, totalCount, nil
}

// ListForUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForUser(ctx context.Context, userID string, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	filter.UserID = &userID
	return a.List(ctx, filter, orgID)
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, userID string, orgID string, startDate, endDate string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND organization_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, orgID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var row attendanceRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		attendances = append(attendances, row.entity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return attendances, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_in_time IS NOT NULL
		  AND check_out_time IS NULL
		  AND date < $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var row attendanceRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		attendances = append(attendances, row.entity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return attendances, nil
}

// ListUserIDsWithoutRecord implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListUserIDsWithoutRecord(ctx context.Context, orgID string, date string) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.user_id
		FROM employees e
		WHERE e.organization_id = $1
		  AND e.active = TRUE
		  AND e.user_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.user_id = e.user_id
			  AND a.date = $2
		  )
	`

	rows, err := q.Query(ctx, query, orgID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list users without record: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return userIDs, nil
}
