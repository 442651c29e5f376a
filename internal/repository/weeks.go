package repository

import (
	"context"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func (r *Repository) UpsertWeekMetrics(ctx context.Context, franchiseID, weekID string, metrics domain.WeekMetrics) error {
	query := `
		INSERT INTO week_summaries (franchise_id, week_id, status, total_hours, active_riders, vehicles_in_use, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (franchise_id, week_id) DO UPDATE
		SET
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			active_riders = EXCLUDED.active_riders,
			vehicles_in_use = EXCLUDED.vehicles_in_use,
			updated_at = now()
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	args := []any{franchiseID, weekID, domain.WeekStatusPublished, metrics.TotalHours, metrics.ActiveRiders, metrics.VehiclesInUse}
	_, err := r.dbpool.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) GetWeekSummary(ctx context.Context, franchiseID, weekID string) (*domain.WeekSummary, error) {
	query := `
		SELECT status, total_hours, active_riders, vehicles_in_use, updated_at
		FROM week_summaries
		WHERE franchise_id = $1 AND week_id = $2
	`

	ctx, cancel := r.queryCtx(ctx)
	defer cancel()

	summary := &domain.WeekSummary{FranchiseID: franchiseID, WeekID: weekID}
	dst := []any{&summary.Status, &summary.Metrics.TotalHours, &summary.Metrics.ActiveRiders, &summary.Metrics.VehiclesInUse, &summary.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, franchiseID, weekID).Scan(dst...); err != nil {
		return nil, err
	}

	return summary, nil
}
