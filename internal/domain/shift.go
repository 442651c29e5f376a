package domain

import (
	"errors"
	"strings"
	"time"
)

type ShiftState string

const (
	ShiftStateDraft           ShiftState = "draft"
	ShiftStatePublished       ShiftState = "published"
	ShiftStateChangeRequested ShiftState = "change_requested"
	ShiftStateConfirmed       ShiftState = "confirmed"
)

// statePrecedence orders the states for display resolution: a confirmed
// shift stays confirmed even if a change was requested earlier.
var statePrecedence = map[ShiftState]int{
	ShiftStateDraft:           0,
	ShiftStatePublished:       1,
	ShiftStateChangeRequested: 2,
	ShiftStateConfirmed:       3,
}

func (s ShiftState) Precedes(other ShiftState) bool {
	return statePrecedence[s] < statePrecedence[other]
}

const DraftIDPrefix = "draft-"

// Shift is one scheduled block for a rider. RiderID may be empty, meaning
// the slot is still unassigned. IDs are client-generated (draft-<uuid>)
// before the first publish and stay stable afterwards, which keeps publish
// retries idempotent.
type Shift struct {
	ID           string     `json:"id"`
	FranchiseID  string     `json:"franchiseID"`
	RiderID      string     `json:"riderID"`
	RiderName    string     `json:"riderName,omitempty"`
	VehiclePlate string     `json:"vehiclePlate,omitempty"`
	StartAt      time.Time  `json:"startAt"`
	EndAt        time.Time  `json:"endAt"`
	State        ShiftState `json:"state"`
	Note         string     `json:"note,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int32      `json:"-"`
}

var ErrInvalidShiftTime = errors.New("la hora de fin debe ser posterior a la de inicio")

// Validate enforces the structural invariant end > start.
func (s *Shift) Validate() error {
	if !s.EndAt.After(s.StartAt) {
		return ErrInvalidShiftTime
	}
	return nil
}

// Duration is the plain timestamp difference, also for cross-midnight shifts.
func (s *Shift) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

func (s *Shift) Hours() float64 {
	return s.Duration().Hours()
}

// IsLocalOnly reports whether the shift never reached the store.
func (s *Shift) IsLocalOnly() bool {
	return strings.HasPrefix(s.ID, DraftIDPrefix)
}

// Overlaps reports whether two half-open intervals [start, end) intersect.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.StartAt.Before(other.EndAt) && s.EndAt.After(other.StartAt)
}

// Clone returns an independent copy.
func (s *Shift) Clone() *Shift {
	c := *s
	return &c
}
