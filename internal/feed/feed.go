package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
)

// Feed turns the relational store into a push source. The initial
// snapshot comes straight from Postgres; afterwards a redis channel per
// franchise signals that the data changed and the snapshot is reloaded.
// Writers that go through the notifying store below publish that signal
// themselves, so every session watching the franchise converges.
type Feed struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *slog.Logger
}

func New(repo *repository.Repository, rdb *redis.Client, logger *slog.Logger) *Feed {
	return &Feed{repo: repo, rdb: rdb, logger: logger}
}

func shiftsChannel(franchiseID string) string {
	return fmt.Sprintf("shifts:%s", franchiseID)
}

func ridersChannel(franchiseID string) string {
	return fmt.Sprintf("riders:%s", franchiseID)
}

// SubscribeShifts delivers the committed shifts intersecting
// [start, end) and re-delivers on every change signal. Reload failures
// are logged and skipped; the subscriber keeps its last good snapshot.
func (f *Feed) SubscribeShifts(ctx context.Context, franchiseID string, start, end time.Time, fn func([]*domain.Shift)) (func(), error) {
	load := func() ([]*domain.Shift, error) {
		return f.repo.GetShiftsInRange(ctx, franchiseID, start, end)
	}

	initial, err := load()
	if err != nil {
		return nil, err
	}
	fn(initial)

	pubsub := f.rdb.Subscribe(ctx, shiftsChannel(franchiseID))
	go func() {
		for range pubsub.Channel() {
			shifts, err := load()
			if err != nil {
				f.logger.Error("no se pudo recargar los turnos", "franchiseID", franchiseID, "error", err)
				continue
			}
			fn(shifts)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// SubscribeRoster is the roster counterpart of SubscribeShifts. Only
// schedulable riders are delivered.
func (f *Feed) SubscribeRoster(ctx context.Context, franchiseID string, fn func([]*domain.Rider)) (func(), error) {
	load := func() ([]*domain.Rider, error) {
		riders, err := f.repo.GetRidersByFranchise(ctx, franchiseID)
		if err != nil {
			return nil, err
		}
		schedulable := make([]*domain.Rider, 0, len(riders))
		for _, r := range riders {
			if r.Status.Schedulable() {
				schedulable = append(schedulable, r)
			}
		}
		return schedulable, nil
	}

	initial, err := load()
	if err != nil {
		return nil, err
	}
	fn(initial)

	pubsub := f.rdb.Subscribe(ctx, ridersChannel(franchiseID))
	go func() {
		for range pubsub.Channel() {
			riders, err := load()
			if err != nil {
				f.logger.Error("no se pudo recargar la plantilla", "franchiseID", franchiseID, "error", err)
				continue
			}
			fn(riders)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// NotifyShiftsChanged pings every subscriber of the franchise's shift
// channel. Failures are logged only: the write already landed and the
// next signal or session restart will reconverge the views.
func (f *Feed) NotifyShiftsChanged(ctx context.Context, franchiseID string) {
	if err := f.rdb.Publish(ctx, shiftsChannel(franchiseID), "changed").Err(); err != nil {
		f.logger.Error("no se pudo notificar el cambio de turnos", "franchiseID", franchiseID, "error", err)
	}
}

func (f *Feed) NotifyRosterChanged(ctx context.Context, franchiseID string) {
	if err := f.rdb.Publish(ctx, ridersChannel(franchiseID), "changed").Err(); err != nil {
		f.logger.Error("no se pudo notificar el cambio de plantilla", "franchiseID", franchiseID, "error", err)
	}
}
