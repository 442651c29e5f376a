package seed

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/repaart-dev/ops-console/backend/internal/config"
	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
	"github.com/repaart-dev/ops-console/backend/internal/scheduler"
	"github.com/repaart-dev/ops-console/backend/internal/utils"
)

const demoFranchiseID = "franquicia-demo"

// SeedDemoData fills an empty database with a demo franchise: a handful
// of users, a rider roster and a published schedule for the current
// week. Errors are logged and the affected record skipped so a partial
// seed still leaves a usable console.
func SeedDemoData(ctx context.Context, cfg *config.Config, repo *repository.Repository) {
	for i := 0; i < 5; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, demoFranchiseID, "repaart.es")
		if err != nil {
			slog.Error("no se pudo generar el usuario de prueba", "error", err)
			continue
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			slog.Error("no se pudo insertar el usuario de prueba", "username", user.Username, "error", err)
			continue
		}
		slog.Info("usuario de prueba creado", "username", user.Username, "role", user.Role)
	}

	riders := make([]*domain.Rider, 0, 8)
	for i := 0; i < 8; i++ {
		rider := utils.GenerateRandomRider(demoFranchiseID)
		if err := repo.CreateRider(ctx, rider); err != nil {
			slog.Error("no se pudo insertar el repartidor de prueba", "fullName", rider.FullName, "error", err)
			continue
		}
		riders = append(riders, rider)
		slog.Info("repartidor de prueba creado", "fullName", rider.FullName, "status", rider.Status)
	}

	seedCurrentWeek(ctx, repo, riders)
}

// seedCurrentWeek publishes lunch and dinner shifts for the current
// week so the grid is not empty on first login.
func seedCurrentWeek(ctx context.Context, repo *repository.Repository, riders []*domain.Rider) {
	now := time.Now()
	weekID := scheduler.WeekID(now)
	year, week, err := scheduler.ParseWeekID(weekID)
	if err != nil {
		slog.Error("no se pudo derivar la semana actual", "error", err)
		return
	}
	monday := scheduler.WeekStart(year, week, now.Location())

	shifts := make([]*domain.Shift, 0)
	for day := 0; day < 7; day++ {
		for _, rider := range riders {
			if !rider.Status.Schedulable() || rand.Intn(3) == 0 {
				continue
			}
			start := monday.AddDate(0, 0, day).Add(12 * time.Hour)
			if rand.Intn(2) == 0 {
				start = monday.AddDate(0, 0, day).Add(20 * time.Hour)
			}
			shift := &domain.Shift{
				ID:           uuid.NewString(),
				FranchiseID:  demoFranchiseID,
				RiderID:      rider.ID,
				RiderName:    rider.FullName,
				VehiclePlate: rider.VehiclePlate,
				StartAt:      start,
				EndAt:        start.Add(4 * time.Hour),
				State:        domain.ShiftStatePublished,
			}
			if err := repo.CreateShift(ctx, shift); err != nil {
				slog.Error("no se pudo insertar el turno de prueba", "riderName", rider.FullName, "error", err)
				continue
			}
			shifts = append(shifts, shift)
		}
	}

	if err := repo.UpsertWeekMetrics(ctx, demoFranchiseID, weekID, scheduler.ComputeMetrics(shifts)); err != nil {
		slog.Error("no se pudo guardar el resumen de la semana", "weekID", weekID, "error", err)
		return
	}
	slog.Info("semana de prueba publicada", "weekID", weekID, "shifts", len(shifts))
}
