package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	publisher := NewPublisher(newFakeStore(), &fakeMetrics{}, testLogger())
	m := NewManager(&fakeRosterSource{}, &fakeShiftFeed{}, publisher, DefaultAuditConfig(), time.UTC, testLogger())
	t.Cleanup(m.Close)
	return m
}

func TestManagerSharesSessionPerFranchiseWeek(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)
	b, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)
	assert.Same(t, a, b, "planners of the same week share draft state")

	c, err := m.Session(context.Background(), "f2", "2026_10")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestManagerRejectsInvalidWeekID(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Session(context.Background(), "f1", "2026_99")
	assert.ErrorIs(t, err, ErrInvalidWeekID)
}

func TestManagerEvictsIdleCleanSessions(t *testing.T) {
	m := newTestManager(t)

	clean, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)

	dirty, err := m.Session(context.Background(), "f2", "2026_10")
	require.NoError(t, err)
	_, err = dirty.SaveShift(weekShift("", "ana", 0, 12, 4))
	require.NoError(t, err)

	m.evictIdle(time.Now().Add(2 * sessionIdleTTL))

	again, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)
	assert.NotSame(t, clean, again, "an idle session without pending changes is torn down")

	kept, err := m.Session(context.Background(), "f2", "2026_10")
	require.NoError(t, err)
	assert.Same(t, dirty, kept, "a session with unpublished drafts is never evicted")
}

func TestManagerDrop(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)
	_, err = a.SaveShift(weekShift("", "ana", 0, 12, 4))
	require.NoError(t, err)

	m.Drop("f1", "2026_10")

	b, err := m.Session(context.Background(), "f1", "2026_10")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.False(t, b.HasUnsavedChanges(), "dropping a session discards its drafts")
}
