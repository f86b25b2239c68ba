package repl

import "github.com/colonyops/parrot/internal/core/snapshot"

// View is an ordered, filterable projection over the snapshot
// collection. The backing slice is shared with the session (one handle
// per snapshot, insertion order from the store); the View owns only
// presentation state: the predicate stack and the selection cursor.
//
// Execution is single-threaded, so "exclusive mutable access to the
// selected entry" is simply the pointer returned by Selected; callers
// that mutate through it must do so before handing the same snapshot
// to the store for persistence.
type View struct {
	snaps   []*snapshot.Snapshot
	filters []Predicate
	visible []int
	cursor  int // index into visible, -1 when nothing is visible
}

// NewView builds a view over the given snapshots with no filters and
// the cursor on the first entry.
func NewView(snaps []*snapshot.Snapshot) *View {
	v := &View{snaps: snaps}
	v.recompute(nil)
	return v
}

// ApplyFilter pushes predicates onto the filter stack (cumulative AND)
// and recomputes the visible sequence. If the previously selected
// snapshot is still visible it stays selected; otherwise the cursor
// falls back to the first visible entry, or none.
func (v *View) ApplyFilter(preds ...Predicate) {
	v.filters = append(v.filters, preds...)
	v.recompute(v.Selected())
}

// ClearFilters empties the filter stack. The full backing sequence
// becomes visible and the cursor resets to the first entry, if any.
func (v *View) ClearFilters() {
	v.filters = nil
	v.recompute(nil)
}

// Up moves the cursor one entry up, saturating at the top.
func (v *View) Up() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// Down moves the cursor one entry down, saturating at the bottom.
func (v *View) Down() {
	if v.cursor >= 0 && v.cursor < len(v.visible)-1 {
		v.cursor++
	}
}

// Len returns the number of visible snapshots.
func (v *View) Len() int {
	return len(v.visible)
}

// Filtered reports whether any filter is active.
func (v *View) Filtered() bool {
	return len(v.filters) > 0
}

// Visible returns the currently visible snapshots in stable backing
// order. The returned handles are shared, not copies.
func (v *View) Visible() []*snapshot.Snapshot {
	out := make([]*snapshot.Snapshot, len(v.visible))
	for i, idx := range v.visible {
		out[i] = v.snaps[idx]
	}
	return out
}

// Selected returns the snapshot under the cursor, or nil when the
// visible sequence is empty.
func (v *View) Selected() *snapshot.Snapshot {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return nil
	}
	return v.snaps[v.visible[v.cursor]]
}

// SelectedIndex returns the cursor position within the visible
// sequence, or -1 when nothing is selected.
func (v *View) SelectedIndex() int {
	return v.cursor
}

// recompute rebuilds the visible index list from the filter stack and
// re-clamps the cursor. keep, when non-nil and still visible, stays
// selected by identity.
func (v *View) recompute(keep *snapshot.Snapshot) {
	v.visible = v.visible[:0]
	for i, s := range v.snaps {
		if v.matchAll(s) {
			v.visible = append(v.visible, i)
		}
	}

	v.cursor = -1
	if len(v.visible) == 0 {
		return
	}

	v.cursor = 0
	if keep == nil {
		return
	}
	for pos, idx := range v.visible {
		if v.snaps[idx] == keep {
			v.cursor = pos
			return
		}
	}
}

func (v *View) matchAll(s *snapshot.Snapshot) bool {
	for _, p := range v.filters {
		if !p.Match(s) {
			return false
		}
	}
	return true
}
