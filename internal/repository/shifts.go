package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func (r *Repository) GetShiftsInRange(ctx context.Context, franchiseID string, start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, rider_id, rider_name, vehicle_plate, start_at, end_at, state, note, created_at, version
		FROM shifts
		WHERE franchise_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at, id
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, franchiseID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{FranchiseID: franchiseID}
		var riderID sql.NullString
		dst := []any{&shift.ID, &riderID, &shift.RiderName, &shift.VehiclePlate, &shift.StartAt, &shift.EndAt, &shift.State, &shift.Note, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.RiderID = riderID.String
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// CreateShift upserts by id so a publish retry after partial failure
// never duplicates a shift created on the previous attempt. The
// conflict update only fires for a row of the same franchise; an id
// collision across franchises reports sql.ErrNoRows instead of
// overwriting foreign data.
func (r *Repository) CreateShift(ctx context.Context, shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (id, franchise_id, rider_id, rider_name, vehicle_plate, start_at, end_at, state, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET
			rider_id = EXCLUDED.rider_id,
			rider_name = EXCLUDED.rider_name,
			vehicle_plate = EXCLUDED.vehicle_plate,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			state = EXCLUDED.state,
			note = EXCLUDED.note,
			version = shifts.version + 1
		WHERE shifts.franchise_id = EXCLUDED.franchise_id
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	args := []any{shift.ID, shift.FranchiseID, nullableID(shift.RiderID), shift.RiderName, shift.VehiclePlate, shift.StartAt, shift.EndAt, shift.State, shift.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// UpdateShift guards on the version stamp: a row another planner
// changed underneath the caller is left alone and the update reports
// sql.ErrNoRows, which publish surfaces as a failed operation.
func (r *Repository) UpdateShift(ctx context.Context, shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			rider_id = $1,
			rider_name = $2,
			vehicle_plate = $3,
			start_at = $4,
			end_at = $5,
			state = $6,
			note = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	args := []any{nullableID(shift.RiderID), shift.RiderName, shift.VehiclePlate, shift.StartAt, shift.EndAt, shift.State, shift.Note, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(ctx context.Context, franchiseID, id string) error {
	query := `
		DELETE FROM shifts WHERE franchise_id = $1 AND id = $2
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, franchiseID, id)
	if err != nil {
		return err
	}

	return nil
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
