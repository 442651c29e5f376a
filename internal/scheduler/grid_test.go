package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func TestResolveDropMovesAcrossDaysAndRiders(t *testing.T) {
	// Monday 10:00-14:00 for rider A dropped on Tuesday 18h under rider B.
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	shift := newShift("s1", "rider-a", monday, 4)

	target := CellRef{
		RiderID: "rider-b",
		Day:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Hour:    18,
	}
	moved := ResolveDrop(shift, target)

	assert.Equal(t, "rider-b", moved.RiderID)
	assert.True(t, moved.StartAt.Equal(time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)))
	assert.True(t, moved.EndAt.Equal(time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, "s1", moved.ID)
}

func TestResolveDropPreservesDurationAndMinute(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
	shift := &domain.Shift{ID: "s1", RiderID: "r1", StartAt: start, EndAt: start.Add(3*time.Hour + 30*time.Minute)}

	target := CellRef{RiderID: "r1", Day: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Hour: 20}
	moved := ResolveDrop(shift, target)

	assert.Equal(t, 20, moved.StartAt.Hour())
	assert.Equal(t, 15, moved.StartAt.Minute(), "minute offset must survive the move")
	assert.Equal(t, shift.Duration(), moved.Duration())
}

func TestResolveDropCrossMidnight(t *testing.T) {
	// 22:00-02:00 keeps its 4h span when moved.
	start := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	shift := &domain.Shift{ID: "s1", RiderID: "r1", StartAt: start, EndAt: start.Add(4 * time.Hour)}

	target := CellRef{RiderID: "r1", Day: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Hour: 23}
	moved := ResolveDrop(shift, target)

	assert.True(t, moved.StartAt.Equal(time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC)))
	assert.True(t, moved.EndAt.Equal(time.Date(2026, 3, 5, 3, 0, 0, 0, time.UTC)))
}

func TestResolveDropDoesNotMutateInput(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	shift := newShift("s1", "r1", start, 4)

	_ = ResolveDrop(shift, CellRef{RiderID: "r2", Day: start.AddDate(0, 0, 1), Hour: 8})

	assert.Equal(t, "r1", shift.RiderID)
	assert.True(t, shift.StartAt.Equal(start))
}

func TestCellKeyRoundTripWithUnderscoresInRiderID(t *testing.T) {
	cell := CellRef{
		RiderID: "franq_rider_07",
		Day:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		Hour:    9,
	}

	key := cell.Key()
	assert.Equal(t, "franq_rider_07_2026-03-04_9", key)

	parsed, err := ParseCellKey(key, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, cell.RiderID, parsed.RiderID)
	assert.True(t, parsed.Day.Equal(cell.Day))
	assert.Equal(t, cell.Hour, parsed.Hour)
}

func TestParseCellKeyRejectsMalformedInput(t *testing.T) {
	for _, key := range []string{
		"",
		"solo",
		"r1_2026-03-04",
		"r1_2026-03-04_25",
		"r1_2026-03-04_-1",
		"r1_notadate_9",
		"r1_2026-03-04_nine",
	} {
		_, err := ParseCellKey(key, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidCellKey, "key %q", key)
	}
}
