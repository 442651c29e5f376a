package scheduler

import (
	"errors"
	"time"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

type QuickFillPreset string

const (
	QuickFillCustom  QuickFillPreset = "custom"
	QuickFillComida  QuickFillPreset = "comida"
	QuickFillCena    QuickFillPreset = "cena"
	QuickFillPartido QuickFillPreset = "partido"
)

var (
	ErrInvalidPreset    = errors.New("el preajuste indicado no es valido")
	ErrInvalidFillHours = errors.New("el rango horario indicado no es valido")
	ErrNoDaysSelected   = errors.New("selecciona al menos un dia")
)

// QuickFillConfig holds the service blocks the presets expand to. Hours
// are on a 0-24 scale; 24 means midnight of the following day.
type QuickFillConfig struct {
	LunchStart  int
	LunchEnd    int
	DinnerStart int
	DinnerEnd   int
}

func DefaultQuickFillConfig() QuickFillConfig {
	return QuickFillConfig{LunchStart: 12, LunchEnd: 16, DinnerStart: 20, DinnerEnd: 24}
}

type QuickFillRequest struct {
	RiderID      string
	RiderName    string
	VehiclePlate string
	Days         []time.Time // midnights of the target days
	Preset       QuickFillPreset
	StartHour    int // custom preset only
	EndHour      int
}

type hourBlock struct{ start, end int }

// QuickFill bulk-creates draft shifts for one rider across the selected
// days. The partido preset yields a split shift, a lunch block plus a
// dinner block per day. Days whose generated shift would collide with a
// confirmed one are skipped; the error reports them while the rest of
// the fill still lands.
func (s *Session) QuickFill(cfg QuickFillConfig, req QuickFillRequest) ([]*domain.Shift, error) {
	if len(req.Days) == 0 {
		return nil, ErrNoDaysSelected
	}

	var blocks []hourBlock
	switch req.Preset {
	case QuickFillComida:
		blocks = []hourBlock{{cfg.LunchStart, cfg.LunchEnd}}
	case QuickFillCena:
		blocks = []hourBlock{{cfg.DinnerStart, cfg.DinnerEnd}}
	case QuickFillPartido:
		blocks = []hourBlock{{cfg.LunchStart, cfg.LunchEnd}, {cfg.DinnerStart, cfg.DinnerEnd}}
	case QuickFillCustom:
		if req.StartHour < 0 || req.EndHour > 24 || req.StartHour >= req.EndHour {
			return nil, ErrInvalidFillHours
		}
		blocks = []hourBlock{{req.StartHour, req.EndHour}}
	default:
		return nil, ErrInvalidPreset
	}

	var (
		created []*domain.Shift
		errs    []error
	)
	for _, day := range req.Days {
		for _, b := range blocks {
			midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
			shift := &domain.Shift{
				RiderID:      req.RiderID,
				RiderName:    req.RiderName,
				VehiclePlate: req.VehiclePlate,
				StartAt:      midnight.Add(time.Duration(b.start) * time.Hour),
				EndAt:        midnight.Add(time.Duration(b.end) * time.Hour),
				State:        domain.ShiftStateDraft,
			}
			saved, err := s.SaveShift(shift)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			created = append(created, saved)
		}
	}
	return created, errors.Join(errs...)
}
