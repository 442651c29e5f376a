package scheduler

import (
	"fmt"
	"math"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

// AuditConfig carries the policy thresholds for the weekly audit. The
// defaults are load-bearing; deployments may tune them via env but the
// zero configuration is never used directly.
type AuditConfig struct {
	SlackHours         float64
	CoverageFloorHours float64
	OvertimePenalty    int
	UnderusePenalty    int
	OptimalThreshold   int
	WarningThreshold   int
	CostPerHour        float64
	SocialSecurityPct  float64
	CoveragePenalty    int
	MinRidersPerDay    int
}

func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		SlackHours:         5,
		CoverageFloorHours: 100,
		OvertimePenalty:    5,
		UnderusePenalty:    2,
		OptimalThreshold:   90,
		WarningThreshold:   70,
		CostPerHour:        12,
		SocialSecurityPct:  0.30,
		CoveragePenalty:    15,
		MinRidersPerDay:    4,
	}
}

// Audit scores the merged weekly schedule against the roster. Pure and
// advisory: a critical report never blocks a publish.
//
// Per rider, hours are summed over assigned shifts. A rider is in
// overtime when hours exceed the contract, and underutilized when the
// shortfall against the contract exceeds the slack. The score starts at
// 100 and loses OvertimePenalty per overtime rider and UnderusePenalty
// per underutilized one, floored at zero.
func Audit(merged []*domain.Shift, roster []*domain.Rider, cfg AuditConfig) *domain.AuditReport {
	hoursByRider := make(map[string]float64, len(roster))
	ridersByDay := make(map[string]map[string]struct{})
	for _, s := range merged {
		if s.RiderID == "" {
			continue
		}
		hoursByRider[s.RiderID] += s.Hours()

		day := s.StartAt.Format("2006-01-02")
		if ridersByDay[day] == nil {
			ridersByDay[day] = make(map[string]struct{})
		}
		ridersByDay[day][s.RiderID] = struct{}{}
	}

	var (
		totalHours    float64
		overtime      int
		excessHours   float64
		underutilized int
	)
	for _, r := range roster {
		if !r.Status.Schedulable() {
			continue
		}
		contract := r.ContractHours
		if contract == 0 {
			contract = domain.DefaultContractHours
		}
		hours := hoursByRider[r.ID]
		totalHours += hours
		switch {
		case hours > contract:
			overtime++
			excessHours += hours - contract
		case contract-hours > cfg.SlackHours:
			underutilized++
		}
	}

	lowCoverageDays := 0
	for _, riders := range ridersByDay {
		if len(riders) < cfg.MinRidersPerDay {
			lowCoverageDays++
		}
	}
	coverageScore := math.Max(0, float64(100-cfg.CoveragePenalty*lowCoverageDays))

	findings := make([]string, 0, 3)
	if overtime > 0 {
		findings = append(findings, fmt.Sprintf(
			"%d repartidor(es) superan sus horas de contrato (%.1f h de exceso en total)",
			overtime, excessHours))
	}
	if underutilized > 0 {
		findings = append(findings, fmt.Sprintf(
			"%d repartidor(es) estan por debajo de sus horas de contrato", underutilized))
	}
	if totalHours < cfg.CoverageFloorHours {
		findings = append(findings, fmt.Sprintf(
			"Cobertura semanal baja: %.1f h programadas frente al minimo de %.0f h",
			totalHours, cfg.CoverageFloorHours))
	}
	if len(findings) == 0 {
		findings = append(findings, "Distribucion de horas optima para toda la plantilla")
	}

	score := 100 - cfg.OvertimePenalty*overtime - cfg.UnderusePenalty*underutilized
	if score < 0 {
		score = 0
	}

	status := domain.AuditStatusCritical
	switch {
	case score > cfg.OptimalThreshold:
		status = domain.AuditStatusOptimal
	case score > cfg.WarningThreshold:
		status = domain.AuditStatusWarning
	}

	return &domain.AuditReport{
		Score:    score,
		Status:   status,
		Findings: findings,
		Details: domain.AuditDetails{
			TotalHours:         totalHours,
			OvertimeCount:      overtime,
			UnderutilizedCount: underutilized,
			CoverageScore:      coverageScore,
			CostEstimate:       totalHours * cfg.CostPerHour * (1 + cfg.SocialSecurityPct),
		},
	}
}
