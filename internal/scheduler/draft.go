package scheduler

import (
	"sort"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

// DraftSet accumulates unpublished grid changes for one week: edited or
// newly created shifts keyed by id, plus tombstones for deleted ones.
// It is not safe for concurrent use; Session serializes access.
type DraftSet struct {
	edits   map[string]*domain.Shift
	revs    map[string]uint64
	deleted map[string]struct{}
	seq     uint64
}

func NewDraftSet() *DraftSet {
	return &DraftSet{
		edits:   make(map[string]*domain.Shift),
		revs:    make(map[string]uint64),
		deleted: make(map[string]struct{}),
	}
}

// Save upserts a draft edit. The shift is cloned, later mutations of
// the argument do not leak into the set. The deletion set is left
// alone: an id may carry both an edit and a tombstone, and merge and
// publish give the tombstone precedence.
func (ds *DraftSet) Save(s *domain.Shift) {
	ds.seq++
	ds.edits[s.ID] = s.Clone()
	ds.revs[s.ID] = ds.seq
}

// MarkDeleted records a tombstone for a committed shift. Any pending
// edit for the same id stays in place but is shadowed everywhere the
// tombstone is consulted. Use Forget for shifts that only ever existed
// as drafts.
func (ds *DraftSet) MarkDeleted(id string) {
	ds.deleted[id] = struct{}{}
}

// Forget discards the pending edit for id without leaving a tombstone.
func (ds *DraftSet) Forget(id string) {
	delete(ds.edits, id)
	delete(ds.revs, id)
}

func (ds *DraftSet) Get(id string) (*domain.Shift, bool) {
	s, ok := ds.edits[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (ds *DraftSet) IsDeleted(id string) bool {
	_, ok := ds.deleted[id]
	return ok
}

// Dirty reports whether the set holds anything worth publishing.
func (ds *DraftSet) Dirty() bool {
	return len(ds.edits) > 0 || len(ds.deleted) > 0
}

func (ds *DraftSet) Len() int {
	return len(ds.edits) + len(ds.deleted)
}

// Edits returns the pending edits ordered by start time, then id, so
// callers iterate deterministically.
func (ds *DraftSet) Edits() []*domain.Shift {
	out := make([]*domain.Shift, 0, len(ds.edits))
	for _, s := range ds.edits {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeletedIDs returns the tombstoned ids in lexical order.
func (ds *DraftSet) DeletedIDs() []string {
	out := make([]string, 0, len(ds.deleted))
	for id := range ds.deleted {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Snapshot captures the set's current contents for a publish attempt:
// the edits to write, the tombstoned ids, and the revision of each edit
// at capture time. Release consumes the revisions to clear exactly what
// the snapshot covered.
func (ds *DraftSet) Snapshot() (edits []*domain.Shift, deletedIDs []string, revs map[string]uint64) {
	edits = ds.Edits()
	deletedIDs = ds.DeletedIDs()
	revs = make(map[string]uint64, len(ds.revs))
	for id, rev := range ds.revs {
		revs[id] = rev
	}
	return edits, deletedIDs, revs
}

// Release drops the entries a successful publish committed. An edit is
// kept when it was re-saved after the snapshot was taken, so work done
// during the publish round-trip is never lost.
func (ds *DraftSet) Release(revs map[string]uint64, deletedIDs []string) {
	for id, rev := range revs {
		if ds.revs[id] == rev {
			delete(ds.edits, id)
			delete(ds.revs, id)
		}
	}
	for _, id := range deletedIDs {
		delete(ds.deleted, id)
	}
}

// Clear empties the set, typically after an explicit discard.
func (ds *DraftSet) Clear() {
	ds.edits = make(map[string]*domain.Shift)
	ds.revs = make(map[string]uint64)
	ds.deleted = make(map[string]struct{})
}
