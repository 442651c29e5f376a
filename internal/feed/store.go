package feed

import (
	"context"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
)

// Store writes shifts through the repository and signals the franchise
// channel after each successful write, so live sessions pick up the new
// committed state without polling.
type Store struct {
	repo *repository.Repository
	feed *Feed
}

func NewStore(repo *repository.Repository, feed *Feed) *Store {
	return &Store{repo: repo, feed: feed}
}

func (s *Store) CreateShift(ctx context.Context, shift *domain.Shift) error {
	if err := s.repo.CreateShift(ctx, shift); err != nil {
		return err
	}
	s.feed.NotifyShiftsChanged(ctx, shift.FranchiseID)
	return nil
}

func (s *Store) UpdateShift(ctx context.Context, shift *domain.Shift) error {
	if err := s.repo.UpdateShift(ctx, shift); err != nil {
		return err
	}
	s.feed.NotifyShiftsChanged(ctx, shift.FranchiseID)
	return nil
}

func (s *Store) DeleteShift(ctx context.Context, franchiseID, id string) error {
	if err := s.repo.DeleteShift(ctx, franchiseID, id); err != nil {
		return err
	}
	s.feed.NotifyShiftsChanged(ctx, franchiseID)
	return nil
}

func (s *Store) UpsertWeekMetrics(ctx context.Context, franchiseID, weekID string, metrics domain.WeekMetrics) error {
	return s.repo.UpsertWeekMetrics(ctx, franchiseID, weekID, metrics)
}
