package scheduler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func rider(id, name string, contract float64) *domain.Rider {
	return &domain.Rider{ID: id, FullName: name, Status: domain.RiderStatusActive, ContractHours: contract}
}

// weekOfShifts spreads the given hours across consecutive days for one
// rider, at most 9h per day so the totals stay realistic.
func weekOfShifts(riderID string, totalHours int) []*domain.Shift {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	var shifts []*domain.Shift
	day := 0
	for totalHours > 0 {
		h := totalHours
		if h > 9 {
			h = 9
		}
		shifts = append(shifts, newShift(
			fmt.Sprintf("%s-d%d", riderID, day), riderID, monday.AddDate(0, 0, day), h))
		totalHours -= h
		day++
	}
	return shifts
}

func TestAuditOvertimeRider(t *testing.T) {
	// Ana holds a 40h contract and is scheduled 45h.
	roster := []*domain.Rider{rider("ana", "Ana", 40)}
	merged := weekOfShifts("ana", 45)

	report := Audit(merged, roster, DefaultAuditConfig())

	assert.Equal(t, 95, report.Score)
	assert.Equal(t, domain.AuditStatusOptimal, report.Status)
	assert.Equal(t, 1, report.Details.OvertimeCount)
	assert.Equal(t, 0, report.Details.UnderutilizedCount)
	assert.InDelta(t, 45, report.Details.TotalHours, 0.001)
	require.NotEmpty(t, report.Findings)
	assert.Contains(t, report.Findings[0], "superan sus horas de contrato")
}

func TestAuditLowCoverageFloor(t *testing.T) {
	// 80h scheduled across two riders, under the 100h floor.
	roster := []*domain.Rider{rider("ana", "Ana", 40), rider("luis", "Luis", 40)}
	merged := append(weekOfShifts("ana", 40), weekOfShifts("luis", 40)...)

	report := Audit(merged, roster, DefaultAuditConfig())

	assert.InDelta(t, 80, report.Details.TotalHours, 0.001)
	found := false
	for _, f := range report.Findings {
		if strings.Contains(f, "Cobertura semanal baja") {
			found = true
		}
	}
	assert.True(t, found, "findings must include the low coverage warning: %v", report.Findings)
}

func TestAuditUnderutilizedRespectsSlack(t *testing.T) {
	cfg := DefaultAuditConfig()
	roster := []*domain.Rider{rider("ana", "Ana", 40)}

	// 36h against a 40h contract is within the 5h slack.
	report := Audit(weekOfShifts("ana", 36), roster, cfg)
	assert.Equal(t, 0, report.Details.UnderutilizedCount)

	// 34h is 6h short, past the slack.
	report = Audit(weekOfShifts("ana", 34), roster, cfg)
	assert.Equal(t, 1, report.Details.UnderutilizedCount)
	assert.Equal(t, 98, report.Score)
}

func TestAuditScoreBoundsAndMonotonicity(t *testing.T) {
	cfg := DefaultAuditConfig()

	var roster []*domain.Rider
	var merged []*domain.Shift
	prev := 101
	for n := 0; n <= 25; n++ {
		if n > 0 {
			id := fmt.Sprintf("r%02d", n)
			roster = append(roster, rider(id, id, 40))
			merged = append(merged, weekOfShifts(id, 45)...)
		}
		report := Audit(merged, roster, cfg)
		assert.GreaterOrEqual(t, report.Score, 0)
		assert.LessOrEqual(t, report.Score, 100)
		assert.LessOrEqual(t, report.Score, prev, "adding an overtime rider must not raise the score")
		prev = report.Score
	}

	// 25 overtime riders drive the raw score to -25; it must clamp at 0.
	report := Audit(merged, roster, cfg)
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, domain.AuditStatusCritical, report.Status)
}

func TestAuditPerfectDistribution(t *testing.T) {
	roster := []*domain.Rider{
		rider("ana", "Ana", 40),
		rider("luis", "Luis", 40),
		rider("marta", "Marta", 40),
	}
	merged := append(weekOfShifts("ana", 40), weekOfShifts("luis", 38)...)
	merged = append(merged, weekOfShifts("marta", 39)...)

	report := Audit(merged, roster, DefaultAuditConfig())

	assert.Equal(t, 100, report.Score)
	assert.Equal(t, domain.AuditStatusOptimal, report.Status)
	require.Len(t, report.Findings, 1)
	assert.Contains(t, report.Findings[0], "optima")
}

func TestAuditIgnoresInactiveRidersAndUnassignedShifts(t *testing.T) {
	roster := []*domain.Rider{
		rider("ana", "Ana", 40),
		{ID: "baja", FullName: "Baja", Status: domain.RiderStatusInactive, ContractHours: 40},
	}
	merged := weekOfShifts("ana", 40)
	unassigned := newShift("libre", "", time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), 4)
	merged = append(merged, unassigned)

	report := Audit(merged, roster, DefaultAuditConfig())

	assert.InDelta(t, 40, report.Details.TotalHours, 0.001)
	assert.Equal(t, 0, report.Details.UnderutilizedCount, "inactive riders are not audited")
}

func TestAuditDefaultContractFallback(t *testing.T) {
	roster := []*domain.Rider{rider("ana", "Ana", 0)} // unset contract defaults to 40
	report := Audit(weekOfShifts("ana", 42), roster, DefaultAuditConfig())
	assert.Equal(t, 1, report.Details.OvertimeCount)
}

func TestAuditStatusBands(t *testing.T) {
	cfg := DefaultAuditConfig()
	cases := []struct {
		overtime int
		status   domain.AuditStatus
	}{
		{0, domain.AuditStatusOptimal},   // 100
		{1, domain.AuditStatusOptimal},   // 95
		{2, domain.AuditStatusWarning},   // 90, not > 90
		{5, domain.AuditStatusWarning},   // 75
		{6, domain.AuditStatusCritical},  // 70, not > 70
		{10, domain.AuditStatusCritical}, // 50
	}
	for _, tc := range cases {
		var roster []*domain.Rider
		var merged []*domain.Shift
		for n := 0; n < tc.overtime; n++ {
			id := fmt.Sprintf("r%02d", n)
			roster = append(roster, rider(id, id, 40))
			merged = append(merged, weekOfShifts(id, 46)...)
		}
		report := Audit(merged, roster, cfg)
		assert.Equal(t, tc.status, report.Status, "overtime=%d score=%d", tc.overtime, report.Score)
	}
}

func TestAuditCostEstimate(t *testing.T) {
	roster := []*domain.Rider{rider("ana", "Ana", 40)}
	report := Audit(weekOfShifts("ana", 40), roster, DefaultAuditConfig())
	// 40h at 12 EUR/h plus 30% social security.
	assert.InDelta(t, 624, report.Details.CostEstimate, 0.001)
}
