package domain

type AuditStatus string

const (
	AuditStatusOptimal  AuditStatus = "optimal"
	AuditStatusWarning  AuditStatus = "warning"
	AuditStatusCritical AuditStatus = "critical"
)

type AuditDetails struct {
	TotalHours         float64 `json:"totalHours"`
	OvertimeCount      int     `json:"overtimeCount"`
	UnderutilizedCount int     `json:"underutilizedCount"`
	CoverageScore      float64 `json:"coverageScore"` // 0-100
	CostEstimate       float64 `json:"costEstimate"`  // EUR, weekly
}

// AuditReport is transient: rebuilt wholesale on every audit run, never
// persisted.
type AuditReport struct {
	Score    int          `json:"score"` // 0-100
	Status   AuditStatus  `json:"status"`
	Findings []string     `json:"findings"` // most severe first
	Details  AuditDetails `json:"details"`
}
