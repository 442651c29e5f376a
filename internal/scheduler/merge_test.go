package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func TestMergeDraftPrecedence(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{newShift("s1", "r1", monday, 4)}

	ds := NewDraftSet()
	edited := newShift("s1", "r2", monday.Add(2*time.Hour), 6)
	edited.Note = "cubre la cena"
	ds.Save(edited)

	merged := Merge(committed, ds)
	require.Len(t, merged, 1)
	assert.Equal(t, "r2", merged[0].RiderID)
	assert.Equal(t, "cubre la cena", merged[0].Note)
	assert.True(t, merged[0].StartAt.Equal(monday.Add(2*time.Hour)))
}

func TestMergeDeletionPrecedence(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{
		newShift("r1", "ana", monday, 4),
		newShift("r2", "luis", monday, 4),
	}

	ds := NewDraftSet()
	ds.Save(newShift("r1", "ana", monday.Add(time.Hour), 4)) // edited and then deleted
	ds.MarkDeleted("r1")

	merged := Merge(committed, ds)
	require.Len(t, merged, 1)
	assert.Equal(t, "r2", merged[0].ID)
}

func TestMergeTombstonedNewDraftHidden(t *testing.T) {
	ds := NewDraftSet()
	ds.Save(newShift("draft-1", "r1", time.Now(), 4))
	ds.MarkDeleted("draft-1")

	assert.Empty(t, Merge(nil, ds))
}

func TestMergeAppendsNewDrafts(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{newShift("s1", "r1", monday, 4)}

	ds := NewDraftSet()
	ds.Save(newShift("draft-9", "r2", monday.Add(8*time.Hour), 4))

	merged := Merge(committed, ds)
	require.Len(t, merged, 2)
	assert.Equal(t, "s1", merged[0].ID)
	assert.Equal(t, "draft-9", merged[1].ID)
}

func TestMergeIdempotence(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{
		newShift("s1", "r1", monday, 4),
		newShift("s2", "r2", monday.Add(time.Hour), 4),
	}
	ds := NewDraftSet()
	ds.Save(newShift("s2", "r3", monday.Add(2*time.Hour), 4))
	ds.Save(newShift("draft-1", "r1", monday.Add(9*time.Hour), 4))
	ds.MarkDeleted("s1")

	first := Merge(committed, ds)
	second := Merge(committed, ds)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	committed := []*domain.Shift{newShift("s1", "r1", monday, 4)}
	ds := NewDraftSet()
	ds.Save(newShift("s1", "r2", monday, 4))

	merged := Merge(committed, ds)
	merged[0].RiderID = "mutated"

	assert.Equal(t, "r1", committed[0].RiderID)
	fromSet, _ := ds.Get("s1")
	assert.Equal(t, "r2", fromSet.RiderID)
}
