package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

// Store is the write side of the shift persistence layer. Each
// operation may fail independently; the publisher aggregates failures
// rather than aborting at the first one.
type Store interface {
	CreateShift(ctx context.Context, shift *domain.Shift) error
	UpdateShift(ctx context.Context, shift *domain.Shift) error
	DeleteShift(ctx context.Context, franchiseID, id string) error
}

// MetricsStore persists the aggregate week summary written alongside a
// publish.
type MetricsStore interface {
	UpsertWeekMetrics(ctx context.Context, franchiseID, weekID string, metrics domain.WeekMetrics) error
}

type PublishResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed,omitempty"` // shift ids whose operation failed
}

func (r *PublishResult) Succeeded() bool {
	return len(r.Failed) == 0
}

type Publisher struct {
	store   Store
	metrics MetricsStore
	logger  *slog.Logger
}

func NewPublisher(store Store, metrics MetricsStore, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, metrics: metrics, logger: logger}
}

// Publish diffs the draft snapshot against the committed shifts and
// executes the resulting operations: deletes first, then an update per
// edit the remote already knows, then a create per new draft. New
// shifts keep an identifier derived from their draft id, so a retry
// after partial failure upserts instead of duplicating. All failures
// are joined into the returned error; on any failure the caller must
// keep the draft set intact.
func (p *Publisher) Publish(
	ctx context.Context,
	franchiseID, weekID string,
	committed []*domain.Shift,
	edits []*domain.Shift,
	deletedIDs []string,
) (*PublishResult, error) {
	remote := make(map[string]struct{}, len(committed))
	for _, s := range committed {
		remote[s.ID] = struct{}{}
	}
	tombstoned := make(map[string]struct{}, len(deletedIDs))
	for _, id := range deletedIDs {
		tombstoned[id] = struct{}{}
	}

	result := &PublishResult{}
	var errs []error

	for _, id := range deletedIDs {
		if _, ok := remote[id]; !ok {
			// never published, nothing to remove remotely
			continue
		}
		if err := p.store.DeleteShift(ctx, franchiseID, id); err != nil {
			p.logger.Error("no se pudo eliminar el turno", "shiftID", id, "error", err)
			result.Failed = append(result.Failed, id)
			errs = append(errs, fmt.Errorf("eliminar turno %s: %w", id, err))
			continue
		}
		result.Deleted++
	}

	for _, edit := range edits {
		if _, ok := tombstoned[edit.ID]; ok {
			continue
		}
		if _, ok := remote[edit.ID]; ok {
			if err := p.store.UpdateShift(ctx, edit); err != nil {
				p.logger.Error("no se pudo actualizar el turno", "shiftID", edit.ID, "error", err)
				result.Failed = append(result.Failed, edit.ID)
				errs = append(errs, fmt.Errorf("actualizar turno %s: %w", edit.ID, err))
				continue
			}
			result.Updated++
			continue
		}

		created := edit.Clone()
		created.ID = strings.TrimPrefix(created.ID, domain.DraftIDPrefix)
		if created.State == domain.ShiftStateDraft {
			created.State = domain.ShiftStatePublished
		}
		if err := p.store.CreateShift(ctx, created); err != nil {
			p.logger.Error("no se pudo crear el turno", "shiftID", edit.ID, "error", err)
			result.Failed = append(result.Failed, edit.ID)
			errs = append(errs, fmt.Errorf("crear turno %s: %w", edit.ID, err))
			continue
		}
		result.Created++
	}

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}

	final := make([]*domain.Shift, 0, len(committed)+len(edits))
	for _, s := range committed {
		if _, ok := tombstoned[s.ID]; ok {
			continue
		}
		if hasEdit(edits, s.ID) {
			continue
		}
		final = append(final, s)
	}
	for _, edit := range edits {
		if _, ok := tombstoned[edit.ID]; ok {
			continue
		}
		final = append(final, edit)
	}
	if err := p.metrics.UpsertWeekMetrics(ctx, franchiseID, weekID, ComputeMetrics(final)); err != nil {
		return result, fmt.Errorf("actualizar metricas de la semana %s: %w", weekID, err)
	}

	return result, nil
}

// ComputeMetrics derives the week summary numbers from a shift list.
func ComputeMetrics(shifts []*domain.Shift) domain.WeekMetrics {
	riders := make(map[string]struct{})
	vehicles := make(map[string]struct{})
	var m domain.WeekMetrics
	for _, s := range shifts {
		m.TotalHours += s.Hours()
		if s.RiderID != "" {
			riders[s.RiderID] = struct{}{}
		}
		if s.VehiclePlate != "" {
			vehicles[s.VehiclePlate] = struct{}{}
		}
	}
	m.ActiveRiders = len(riders)
	m.VehiclesInUse = len(vehicles)
	return m
}

func hasEdit(edits []*domain.Shift, id string) bool {
	for _, e := range edits {
		if e.ID == id {
			return true
		}
	}
	return false
}
