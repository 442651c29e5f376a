package domain

import "time"

type RiderStatus string

const (
	RiderStatusActive   RiderStatus = "active"
	RiderStatusInactive RiderStatus = "inactive"
	RiderStatusOnRoute  RiderStatus = "on_route"
)

// Schedulable reports whether the rider appears in the weekly grid.
func (s RiderStatus) Schedulable() bool {
	return s == RiderStatusActive || s == RiderStatusOnRoute
}

type Rider struct {
	ID            string      `json:"id"`
	FranchiseID   string      `json:"franchiseID"`
	FullName      string      `json:"fullName"`
	Status        RiderStatus `json:"status"`
	ContractHours float64     `json:"contractHours"`
	VehiclePlate  string      `json:"vehiclePlate,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	Version       int32       `json:"-"`
}

const DefaultContractHours = 40
