package repository

import (
	"context"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func (r *Repository) GetRidersByFranchise(ctx context.Context, franchiseID string) ([]*domain.Rider, error) {
	query := `
		SELECT id, full_name, status, contract_hours, vehicle_plate, created_at, version
		FROM riders WHERE franchise_id = $1
		ORDER BY full_name
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]*domain.Rider, 0)
	for rows.Next() {
		rider := &domain.Rider{FranchiseID: franchiseID}
		dst := []any{&rider.ID, &rider.FullName, &rider.Status, &rider.ContractHours, &rider.VehiclePlate, &rider.CreatedAt, &rider.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		riders = append(riders, rider)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}

func (r *Repository) GetRiderByID(ctx context.Context, id string) (*domain.Rider, error) {
	query := `
		SELECT franchise_id, full_name, status, contract_hours, vehicle_plate, created_at, version
		FROM riders WHERE id = $1
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	rider := &domain.Rider{ID: id}
	dst := []any{&rider.FranchiseID, &rider.FullName, &rider.Status, &rider.ContractHours, &rider.VehiclePlate, &rider.CreatedAt, &rider.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return rider, nil
}

func (r *Repository) CreateRider(ctx context.Context, rider *domain.Rider) error {
	query := `
		INSERT INTO riders (id, franchise_id, full_name, status, contract_hours, vehicle_plate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	args := []any{rider.ID, rider.FranchiseID, rider.FullName, rider.Status, rider.ContractHours, rider.VehiclePlate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rider.CreatedAt, &rider.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateRider(ctx context.Context, rider *domain.Rider) error {
	query := `
		UPDATE riders
		SET
			full_name = $1,
			status = $2,
			contract_hours = $3,
			vehicle_plate = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	args := []any{rider.FullName, rider.Status, rider.ContractHours, rider.VehiclePlate, rider.ID, rider.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rider.CreatedAt, &rider.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRider(ctx context.Context, id string) error {
	query := `
		DELETE FROM riders WHERE id = $1
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
