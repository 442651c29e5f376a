package domain

import "time"

// WeekMetrics is the aggregate written alongside a publish, mirroring the
// document the console's dashboard reads.
type WeekMetrics struct {
	TotalHours    float64 `json:"totalHours"`
	ActiveRiders  int     `json:"activeRiders"`
	VehiclesInUse int     `json:"vehiclesInUse"`
}

type WeekStatus string

const (
	WeekStatusDraft     WeekStatus = "draft"
	WeekStatusPublished WeekStatus = "published"
)

type WeekSummary struct {
	FranchiseID string      `json:"franchiseID"`
	WeekID      string      `json:"weekID"`
	StartDate   string      `json:"startDate"` // YYYY-MM-DD, Monday
	Status      WeekStatus  `json:"status"`
	Metrics     WeekMetrics `json:"metrics"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
