package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

var ErrInvalidCellKey = errors.New("la celda indicada no es valida")

// CellRef addresses one slot of the weekly grid: a rider row and an
// hour column on a concrete day. An empty RiderID means the unassigned
// row.
type CellRef struct {
	RiderID string
	Day     time.Time // midnight, grid timezone
	Hour    int       // 0-23
}

// Key renders the cell as "<riderID>_<YYYY-MM-DD>_<H>". Rider ids may
// themselves contain underscores; ParseCellKey relies on the date and
// hour being the two fixed trailing segments.
func (c CellRef) Key() string {
	return fmt.Sprintf("%s_%s_%d", c.RiderID, c.Day.Format("2006-01-02"), c.Hour)
}

// ParseCellKey is the inverse of CellRef.Key. The day is interpreted in
// loc.
func ParseCellKey(key string, loc *time.Location) (CellRef, error) {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return CellRef{}, ErrInvalidCellKey
	}
	hour, err := strconv.Atoi(key[i+1:])
	if err != nil || hour < 0 || hour > 23 {
		return CellRef{}, ErrInvalidCellKey
	}
	rest := key[:i]
	j := strings.LastIndexByte(rest, '_')
	if j < 0 {
		return CellRef{}, ErrInvalidCellKey
	}
	day, err := time.ParseInLocation("2006-01-02", rest[j+1:], loc)
	if err != nil {
		return CellRef{}, ErrInvalidCellKey
	}
	return CellRef{RiderID: rest[:j], Day: day, Hour: hour}, nil
}

// ResolveDrop relocates a shift onto the target cell. The shift keeps
// its duration and its start minute offset: dropping a 10:30-14:30
// shift on an 18h cell yields 18:30-22:30, on the target day and under
// the target rider. The input is not mutated.
func ResolveDrop(s *domain.Shift, target CellRef) *domain.Shift {
	moved := s.Clone()
	moved.RiderID = target.RiderID
	moved.StartAt = time.Date(
		target.Day.Year(), target.Day.Month(), target.Day.Day(),
		target.Hour, s.StartAt.Minute(), 0, 0, target.Day.Location(),
	)
	moved.EndAt = moved.StartAt.Add(s.Duration())
	return moved
}
