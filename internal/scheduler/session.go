package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

var (
	ErrShiftNotFound     = errors.New("el turno indicado no existe")
	ErrShiftOverlap      = errors.New("el turno se solapa con otro turno del mismo repartidor")
	ErrPublishInProgress = errors.New("ya hay una publicacion en curso")
	ErrNothingToPublish  = errors.New("no hay cambios pendientes de publicar")
	ErrSessionNotReady   = errors.New("la sesion todavia no ha recibido datos")
)

// RosterSource pushes the schedulable rider list for a franchise. The
// callback fires once with the current roster and again on every
// change, until the returned cancel func runs.
type RosterSource interface {
	SubscribeRoster(ctx context.Context, franchiseID string, fn func([]*domain.Rider)) (func(), error)
}

// ShiftFeed pushes the committed shifts intersecting [start, end) for a
// franchise, same delivery contract as RosterSource.
type ShiftFeed interface {
	SubscribeShifts(ctx context.Context, franchiseID string, start, end time.Time, fn func([]*domain.Shift)) (func(), error)
}

// Session is the editing surface for one franchise and one week. It
// layers a DraftSet over the live committed state and serializes every
// mutation behind a single mutex, so callers see the push/callback
// model as strictly ordered. Edits stay accepted while a publish is in
// flight; only a second publish is refused.
type Session struct {
	FranchiseID string
	WeekID      string

	start time.Time
	end   time.Time

	publisher *Publisher
	auditCfg  AuditConfig
	logger    *slog.Logger

	mu         sync.Mutex
	drafts     *DraftSet
	committed  []*domain.Shift
	roster     []*domain.Rider
	publishing bool
	lastUsed   time.Time

	ready     chan struct{}
	readyOnce sync.Once

	cancels []func()
}

func NewSession(franchiseID, weekID string, loc *time.Location, publisher *Publisher, auditCfg AuditConfig, logger *slog.Logger) (*Session, error) {
	start, end, err := WeekInterval(weekID, loc)
	if err != nil {
		return nil, err
	}
	return &Session{
		FranchiseID: franchiseID,
		WeekID:      weekID,
		start:       start,
		end:         end,
		publisher:   publisher,
		auditCfg:    auditCfg,
		logger:      logger.With("franchiseID", franchiseID, "weekID", weekID),
		drafts:      NewDraftSet(),
		lastUsed:    time.Now(),
		ready:       make(chan struct{}),
	}, nil
}

// Start wires the session to its push sources. The session is usable
// once Ready is closed, which happens after the first shift snapshot
// arrives. The subscriptions run on a session-lifetime context, ended
// by Close: the ctx argument typically belongs to the request that
// created the session and must not cut the feed off when it finishes.
func (s *Session) Start(ctx context.Context, roster RosterSource, feed ShiftFeed) error {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	cancelRoster, err := roster.SubscribeRoster(subCtx, s.FranchiseID, func(riders []*domain.Rider) {
		s.mu.Lock()
		s.roster = riders
		s.mu.Unlock()
	})
	if err != nil {
		cancel()
		return err
	}

	cancelShifts, err := feed.SubscribeShifts(subCtx, s.FranchiseID, s.start, s.end, func(shifts []*domain.Shift) {
		s.mu.Lock()
		s.committed = shifts
		s.mu.Unlock()
		s.readyOnce.Do(func() { close(s.ready) })
	})
	if err != nil {
		cancelRoster()
		cancel()
		return err
	}
	s.cancels = append(s.cancels, cancel, cancelRoster, cancelShifts)

	return nil
}

// Ready is closed after the initial committed snapshot has arrived.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the first snapshot or ctx expiry.
func (s *Session) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ErrSessionNotReady
	}
}

func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// Interval returns the half-open week bounds of the session.
func (s *Session) Interval() (start, end time.Time) {
	return s.start, s.end
}

// MergedShifts returns the display view: committed shifts overlaid with
// drafts and tombstones.
func (s *Session) MergedShifts() []*domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Merge(s.committed, s.drafts)
}

func (s *Session) Roster() []*domain.Rider {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Rider, len(s.roster))
	copy(out, s.roster)
	return out
}

func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts.Dirty()
}

// SaveShift validates and upserts a draft edit. A shift without an id
// is treated as new and given a client-generated draft id, which later
// anchors idempotent creation on publish. A definitive id the session
// does not know is rejected: publishing it would emit a create and
// could clobber a row belonging to another week or franchise. Shifts
// that would overlap a confirmed shift of the same rider are rejected.
func (s *Session) SaveShift(shift *domain.Shift) (*domain.Shift, error) {
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := shift.Clone()
	if draft.ID == "" {
		draft.ID = domain.DraftIDPrefix + uuid.NewString()
		draft.State = domain.ShiftStateDraft
	}
	draft.FranchiseID = s.FranchiseID

	if !draft.IsLocalOnly() {
		existing := s.lookupLocked(draft.ID)
		if existing == nil {
			return nil, ErrShiftNotFound
		}
		// callers never send the version stamp or creation time, so the
		// edit inherits them from the record it is based on
		draft.Version = existing.Version
		draft.CreatedAt = existing.CreatedAt
		if draft.State == "" {
			draft.State = existing.State
		}
	}

	if err := s.checkOverlapLocked(draft); err != nil {
		return nil, err
	}

	s.drafts.Save(draft)
	return draft.Clone(), nil
}

// DeleteShift removes a shift from the week. A shift that only ever
// existed locally is dropped from the draft set outright; anything the
// remote knows gets a tombstone that publish turns into a delete.
func (s *Session) DeleteShift(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if edit, ok := s.drafts.Get(id); ok && edit.IsLocalOnly() {
		s.drafts.Forget(id)
		return nil
	}
	if !s.knowsLocked(id) {
		return ErrShiftNotFound
	}
	s.drafts.MarkDeleted(id)
	return nil
}

// MoveShift relocates the shift onto the target cell, keeping its
// duration and start minute. The result lands in the draft set like any
// other edit.
func (s *Session) MoveShift(id string, target CellRef) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findLocked(id)
	if current == nil {
		return nil, ErrShiftNotFound
	}
	moved := ResolveDrop(current, target)
	if err := moved.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOverlapLocked(moved); err != nil {
		return nil, err
	}
	s.drafts.Save(moved)
	return moved.Clone(), nil
}

// Discard drops every pending edit and tombstone.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.Clear()
}

// Publish writes the pending drafts through the publisher. The draft
// set is snapshotted up front and the network round-trip runs without
// holding the session lock, so edits keep flowing while the publish is
// in flight. Only a fully successful publish releases the snapshotted
// entries; on any failure everything stays pending for retry.
func (s *Session) Publish(ctx context.Context) (*PublishResult, error) {
	s.mu.Lock()
	if s.publishing {
		s.mu.Unlock()
		return nil, ErrPublishInProgress
	}
	if !s.drafts.Dirty() {
		s.mu.Unlock()
		return nil, ErrNothingToPublish
	}
	s.publishing = true
	edits, deletedIDs, revs := s.drafts.Snapshot()
	committed := make([]*domain.Shift, len(s.committed))
	copy(committed, s.committed)
	s.mu.Unlock()

	result, err := s.publisher.Publish(ctx, s.FranchiseID, s.WeekID, committed, edits, deletedIDs)

	s.mu.Lock()
	s.publishing = false
	if err == nil {
		s.drafts.Release(revs, deletedIDs)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("publicacion incompleta, se conservan los borradores", "error", err)
		return result, err
	}
	s.logger.Info("semana publicada",
		"created", result.Created, "updated", result.Updated, "deleted", result.Deleted)
	return result, nil
}

// Audit runs the weekly audit over the merged view. Advisory only.
func (s *Session) Audit() *domain.AuditReport {
	s.mu.Lock()
	merged := Merge(s.committed, s.drafts)
	roster := make([]*domain.Rider, len(s.roster))
	copy(roster, s.roster)
	s.mu.Unlock()
	return Audit(merged, roster, s.auditCfg)
}

// Metrics summarizes the merged view, drafts included.
func (s *Session) Metrics() domain.WeekMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeMetrics(Merge(s.committed, s.drafts))
}

// checkOverlapLocked rejects a candidate that intersects a confirmed
// shift of the same rider. Unassigned shifts never conflict.
func (s *Session) checkOverlapLocked(candidate *domain.Shift) error {
	if candidate.RiderID == "" {
		return nil
	}
	for _, other := range Merge(s.committed, s.drafts) {
		if other.ID == candidate.ID || other.RiderID != candidate.RiderID {
			continue
		}
		if other.State != domain.ShiftStateConfirmed {
			continue
		}
		if candidate.Overlaps(other) {
			return ErrShiftOverlap
		}
	}
	return nil
}

func (s *Session) knowsLocked(id string) bool {
	return s.findLocked(id) != nil
}

// lookupLocked returns the current record for id, preferring a pending
// edit over the committed row. Tombstones are ignored here on purpose:
// an edit may coexist with one.
func (s *Session) lookupLocked(id string) *domain.Shift {
	if edit, ok := s.drafts.Get(id); ok {
		return edit
	}
	for _, c := range s.committed {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) findLocked(id string) *domain.Shift {
	for _, shift := range Merge(s.committed, s.drafts) {
		if shift.ID == id {
			return shift
		}
	}
	return nil
}
