package scheduler

import (
	"sort"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

// Merge overlays a draft set on top of the committed shifts for a week
// and returns the view the grid renders. Precedence, from strongest to
// weakest: tombstones hide the shift entirely, a pending edit replaces
// the committed row in place, and edits for ids the remote does not
// know yet (new drafts) are appended. The committed slice is never
// mutated; the result holds clones throughout.
func Merge(committed []*domain.Shift, drafts *DraftSet) []*domain.Shift {
	merged := make([]*domain.Shift, 0, len(committed)+drafts.Len())
	seen := make(map[string]struct{}, len(committed))

	for _, s := range committed {
		if drafts.IsDeleted(s.ID) {
			continue
		}
		seen[s.ID] = struct{}{}
		if edit, ok := drafts.Get(s.ID); ok {
			merged = append(merged, edit)
			continue
		}
		merged = append(merged, s.Clone())
	}

	for _, edit := range drafts.Edits() {
		if _, ok := seen[edit.ID]; ok {
			continue
		}
		if drafts.IsDeleted(edit.ID) {
			continue
		}
		merged = append(merged, edit)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].StartAt.Equal(merged[j].StartAt) {
			return merged[i].StartAt.Before(merged[j].StartAt)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
