package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoattend/attendance-backend-go/internal/domain/organization"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

const organizationColumns = `
	id, name, slug, address, timezone, expected_shift_minutes,
	office_latitude, office_longitude, office_radius_meters,
	created_at, updated_at
`

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var org organization.Organization
	var officeLat, officeLng *float64
	var officeRadius *int

	err := row.Scan(
		&org.ID, &org.Name, &org.Slug, &org.Address, &org.Timezone, &org.ExpectedShiftMinutes,
		&officeLat, &officeLng, &officeRadius,
		&org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return organization.Organization{}, err
	}

	if officeLat != nil && officeLng != nil && officeRadius != nil {
		org.Geofence = &organization.OfficeGeofence{
			Latitude:     *officeLat,
			Longitude:    *officeLng,
			RadiusMeters: *officeRadius,
		}
	}

	return org, nil
}

// Create implements organization.OrganizationRepository.
func (o *organizationRepository) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO organizations (id, name, slug, address, timezone, expected_shift_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	org.ID = uuid.New().String()
	err := q.QueryRow(ctx, query,
		org.ID, org.Name, org.Slug, org.Address, org.Timezone, org.ExpectedShiftMinutes,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return organization.Organization{}, organization.ErrSlugExists
		}
		return organization.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID implements organization.OrganizationRepository.
func (o *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1 LIMIT 1`

	org, err := scanOrganization(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by id: %w", err)
	}

	return org, nil
}

// GetBySlug implements organization.OrganizationRepository.
func (o *organizationRepository) GetBySlug(ctx context.Context, slug string) (organization.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1 LIMIT 1`

	org, err := scanOrganization(q.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by slug: %w", err)
	}

	return org, nil
}

// ExistsByIDOrSlug implements organization.OrganizationRepository.
func (o *organizationRepository) ExistsByIDOrSlug(ctx context.Context, id *string, slug *string) (bool, error) {
	q := GetQuerier(ctx, o.db)

	conditions := []string{}
	args := []interface{}{}
	argIdx := 1

	if id != nil {
		conditions = append(conditions, fmt.Sprintf("id = $%d", argIdx))
		args = append(args, *id)
		argIdx++
	}
	if slug != nil {
		conditions = append(conditions, fmt.Sprintf("slug = $%d", argIdx))
		args = append(args, *slug)
		argIdx++
	}

	if len(conditions) == 0 {
		return false, nil
	}

	query := `SELECT EXISTS (SELECT 1 FROM organizations WHERE ` + strings.Join(conditions, " OR ") + `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check organization existence: %w", err)
	}

	return exists, nil
}

// Update implements organization.OrganizationRepository.
func (o *organizationRepository) Update(ctx context.Context, id string, req organization.UpdateOrganizationRequest) error {
	q := GetQuerier(ctx, o.db)

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, *req.Address)
		argIdx++
	}
	if req.Timezone != nil {
		setClauses = append(setClauses, fmt.Sprintf("timezone = $%d", argIdx))
		args = append(args, *req.Timezone)
		argIdx++
	}
	if req.ExpectedShiftMinutes != nil {
		setClauses = append(setClauses, fmt.Sprintf("expected_shift_minutes = $%d", argIdx))
		args = append(args, *req.ExpectedShiftMinutes)
		argIdx++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE organizations SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argIdx,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}

// UpdateGeofence implements organization.OrganizationRepository.
func (o *organizationRepository) UpdateGeofence(ctx context.Context, id string, fence organization.OfficeGeofence) error {
	q := GetQuerier(ctx, o.db)

	query := `
		UPDATE organizations
		SET office_latitude = $1,
			office_longitude = $2,
			office_radius_meters = $3,
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, fence.Latitude, fence.Longitude, fence.RadiusMeters, id)
	if err != nil {
		return fmt.Errorf("failed to update geofence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}
