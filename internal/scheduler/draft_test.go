package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func newShift(id, riderID string, start time.Time, hours int) *domain.Shift {
	return &domain.Shift{
		ID:      id,
		RiderID: riderID,
		StartAt: start,
		EndAt:   start.Add(time.Duration(hours) * time.Hour),
		State:   domain.ShiftStatePublished,
	}
}

func TestDraftSetUpsertIdempotence(t *testing.T) {
	ds := NewDraftSet()
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	v1 := newShift("x", "r1", monday, 4)
	v2 := newShift("x", "r2", monday.Add(time.Hour), 4)

	ds.Save(v1)
	ds.Save(v2)

	edits := ds.Edits()
	require.Len(t, edits, 1)
	assert.Equal(t, "r2", edits[0].RiderID)
	assert.True(t, edits[0].StartAt.Equal(monday.Add(time.Hour)))
}

func TestDraftSetSaveClonesInput(t *testing.T) {
	ds := NewDraftSet()
	s := newShift("x", "r1", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), 4)

	ds.Save(s)
	s.RiderID = "mutated"

	got, ok := ds.Get("x")
	require.True(t, ok)
	assert.Equal(t, "r1", got.RiderID)
}

func TestDraftSetDirty(t *testing.T) {
	ds := NewDraftSet()
	assert.False(t, ds.Dirty())

	ds.MarkDeleted("r1")
	assert.True(t, ds.Dirty())

	ds.Clear()
	assert.False(t, ds.Dirty())

	ds.Save(newShift("x", "r1", time.Now(), 4))
	assert.True(t, ds.Dirty())
}

func TestDraftSetTombstoneCoexistsWithEdit(t *testing.T) {
	ds := NewDraftSet()
	ds.Save(newShift("x", "r1", time.Now(), 4))
	ds.MarkDeleted("x")

	_, ok := ds.Get("x")
	assert.True(t, ok, "MarkDeleted must not drop the edit")
	assert.True(t, ds.IsDeleted("x"))
	assert.Equal(t, 2, ds.Len())
}

func TestDraftSetForgetLeavesNoTombstone(t *testing.T) {
	ds := NewDraftSet()
	ds.Save(newShift("draft-abc", "r1", time.Now(), 4))
	ds.Forget("draft-abc")

	assert.False(t, ds.Dirty())
	assert.False(t, ds.IsDeleted("draft-abc"))
}

func TestDraftSetReleaseKeepsEditsSavedAfterSnapshot(t *testing.T) {
	ds := NewDraftSet()
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ds.Save(newShift("a", "r1", monday, 4))
	ds.Save(newShift("b", "r2", monday, 4))
	ds.MarkDeleted("gone")

	edits, deleted, revs := ds.Snapshot()
	require.Len(t, edits, 2)
	require.Equal(t, []string{"gone"}, deleted)

	// re-save "b" while the publish is in flight
	ds.Save(newShift("b", "r3", monday.Add(time.Hour), 4))

	ds.Release(revs, deleted)

	_, ok := ds.Get("a")
	assert.False(t, ok, "snapshotted edit should be released")
	got, ok := ds.Get("b")
	require.True(t, ok, "edit re-saved after snapshot must survive")
	assert.Equal(t, "r3", got.RiderID)
	assert.False(t, ds.IsDeleted("gone"))
}
