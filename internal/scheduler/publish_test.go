package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

type fakeStore struct {
	created map[string]int // id -> times created
	updated map[string]int
	deleted map[string]int

	lastUpdated map[string]*domain.Shift

	failDelete map[string]error
	failCreate map[string]error
	failUpdate map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		created:     make(map[string]int),
		updated:     make(map[string]int),
		deleted:     make(map[string]int),
		lastUpdated: make(map[string]*domain.Shift),
		failDelete:  make(map[string]error),
		failCreate:  make(map[string]error),
		failUpdate:  make(map[string]error),
	}
}

func (f *fakeStore) CreateShift(_ context.Context, s *domain.Shift) error {
	if err := f.failCreate[s.ID]; err != nil {
		return err
	}
	f.created[s.ID]++
	return nil
}

func (f *fakeStore) UpdateShift(_ context.Context, s *domain.Shift) error {
	if err := f.failUpdate[s.ID]; err != nil {
		return err
	}
	f.updated[s.ID]++
	f.lastUpdated[s.ID] = s.Clone()
	return nil
}

func (f *fakeStore) DeleteShift(_ context.Context, _, id string) error {
	if err := f.failDelete[id]; err != nil {
		return err
	}
	f.deleted[id]++
	return nil
}

type fakeMetrics struct {
	last  domain.WeekMetrics
	calls int
	fail  error
}

func (f *fakeMetrics) UpsertWeekMetrics(_ context.Context, _, _ string, m domain.WeekMetrics) error {
	if f.fail != nil {
		return f.fail
	}
	f.last = m
	f.calls++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishDiffsCreatesUpdatesDeletes(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{
		newShift("s1", "ana", monday, 4),
		newShift("s2", "luis", monday, 4),
	}

	ds := NewDraftSet()
	ds.Save(newShift("s1", "ana", monday.Add(time.Hour), 4)) // update
	ds.Save(newShift("draft-abc", "marta", monday, 4))       // create
	ds.MarkDeleted("s2")                                     // delete
	edits, deletedIDs, _ := ds.Snapshot()

	store := newFakeStore()
	metrics := &fakeMetrics{}
	p := NewPublisher(store, metrics, testLogger())

	result, err := p.Publish(context.Background(), "f1", "2026_10", committed, edits, deletedIDs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Deleted)
	assert.True(t, result.Succeeded())

	assert.Equal(t, 1, store.created["abc"], "create must use the id without the draft prefix")
	assert.Equal(t, 1, store.updated["s1"])
	assert.Equal(t, 1, store.deleted["s2"])
	assert.Equal(t, 1, metrics.calls)
}

func TestPublishSkipsTombstonedEditsAndLocalOnlyDeletes(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	ds := NewDraftSet()
	ds.Save(newShift("draft-x", "ana", monday, 4))
	ds.MarkDeleted("draft-x") // never published, nothing to do remotely
	edits, deletedIDs, _ := ds.Snapshot()

	store := newFakeStore()
	p := NewPublisher(store, &fakeMetrics{}, testLogger())

	result, err := p.Publish(context.Background(), "f1", "2026_10", nil, edits, deletedIDs)
	require.NoError(t, err)

	assert.Zero(t, result.Created)
	assert.Zero(t, result.Deleted)
	assert.Empty(t, store.created)
	assert.Empty(t, store.deleted)
}

func TestPublishPartialFailureRetryIsIdempotent(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{newShift("s2", "luis", monday, 4)}

	ds := NewDraftSet()
	ds.Save(newShift("draft-new", "marta", monday, 4))
	ds.MarkDeleted("s2")
	edits, deletedIDs, revs := ds.Snapshot()

	store := newFakeStore()
	store.failDelete["s2"] = errors.New("conexion rechazada")
	metrics := &fakeMetrics{}
	p := NewPublisher(store, metrics, testLogger())

	result, err := p.Publish(context.Background(), "f1", "2026_10", committed, edits, deletedIDs)
	require.Error(t, err)
	assert.Equal(t, []string{"s2"}, result.Failed)
	assert.Equal(t, 1, result.Created, "the create still ran")
	assert.Zero(t, metrics.calls, "metrics are only written after a clean publish")

	// Failure means the draft set is not released; a retry re-runs
	// everything and the already-succeeded create must upsert, not
	// duplicate.
	require.True(t, ds.Dirty())

	store.failDelete = map[string]error{}
	edits, deletedIDs, revs = ds.Snapshot()
	result, err = p.Publish(context.Background(), "f1", "2026_10", committed, edits, deletedIDs)
	require.NoError(t, err)
	ds.Release(revs, deletedIDs)

	assert.False(t, ds.Dirty())
	assert.Equal(t, 2, store.created["new"], "same stable id on retry")
	assert.Equal(t, 1, store.deleted["s2"])
}

func TestPublishMetricsFailureSurfaces(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ds := NewDraftSet()
	ds.Save(newShift("draft-a", "ana", monday, 4))
	edits, deletedIDs, _ := ds.Snapshot()

	p := NewPublisher(newFakeStore(), &fakeMetrics{fail: errors.New("sin conexion")}, testLogger())
	_, err := p.Publish(context.Background(), "f1", "2026_10", nil, edits, deletedIDs)
	require.Error(t, err)
}

func TestComputeMetrics(t *testing.T) {
	monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	s1 := newShift("s1", "ana", monday, 4)
	s1.VehiclePlate = "1234-BCD"
	s2 := newShift("s2", "luis", monday, 6)
	s2.VehiclePlate = "5678-FGH"
	s3 := newShift("s3", "ana", monday.AddDate(0, 0, 1), 4)
	s3.VehiclePlate = "1234-BCD"
	unassigned := newShift("s4", "", monday, 2)

	m := ComputeMetrics([]*domain.Shift{s1, s2, s3, unassigned})

	assert.InDelta(t, 16, m.TotalHours, 0.001)
	assert.Equal(t, 2, m.ActiveRiders)
	assert.Equal(t, 2, m.VehiclesInUse)
}
