// Package planner implements the client-side seating logic used by admin
// tools: an in-memory registry of tables with aggregate statistics, an
// incremental occupancy accountant fed by assignment deltas, and an
// optimistic update coordinator that talks to the remote API.
package planner

import (
	"sync"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// Delta is the minimal description of a single committed assignment change.
// Nil OldTableID means the guest was unassigned before; nil NewTableID means
// the guest is unassigned after.  Deltas are transient: produced by the
// coordinator, consumed by the board, never stored.
type Delta struct {
	GuestID      uint64
	OldTableID   *uint64
	NewTableID   *uint64
	NewTableName *string
}

// Board holds the current known state of all tables plus the aggregate
// statistics, initialized from server snapshots and kept consistent by
// applying deltas incrementally.  All mutation funnels through Apply and
// Replace; views read via Summaries/Stats, which return copies.  The board
// is the single writer for this state, so one mutex is enough to make each
// delta application atomic with respect to concurrent readers.
type Board struct {
	mu     sync.Mutex
	tables map[uint64]*model.Table
	order  []uint64
	stats  model.TableStats
}

// NewBoard builds a board from full server snapshots.  Table order is
// preserved for rendering.
func NewBoard(tables []model.Table, stats model.TableStats) *Board {
	b := &Board{}
	b.Replace(tables, stats)
	return b
}

// Replace discards local state wholesale in favour of fresh snapshots.
// This is the correction mechanism for aggregate drift: incremental updates
// are best-effort and a manual refresh re-establishes ground truth.
func (b *Board) Replace(tables []model.Table, stats model.TableStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tables = make(map[uint64]*model.Table, len(tables))
	b.order = make([]uint64, 0, len(tables))
	for i := range tables {
		t := tables[i]
		b.tables[t.ID] = &t
		b.order = append(b.order, t.ID)
	}
	b.stats = stats
}

// Apply updates per-table occupancy and the global statistics for one
// committed delta.  Increments are clamped so that a duplicate or
// out-of-order delta can never drive occupancy below zero or above
// capacity.  The whole update is atomic: readers observe either none or all
// of the delta's effects.
func (b *Board) Apply(d Delta) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d.OldTableID != nil {
		if t, ok := b.tables[*d.OldTableID]; ok && t.CurrentOccupancy > 0 {
			t.CurrentOccupancy--
		}
	}
	if d.NewTableID != nil {
		if t, ok := b.tables[*d.NewTableID]; ok && t.CurrentOccupancy < t.MaxCapacity {
			t.CurrentOccupancy++
		}
	}

	switch {
	case d.OldTableID == nil && d.NewTableID != nil:
		// unassigned -> assigned
		b.shiftAssigned(+1)
	case d.OldTableID != nil && d.NewTableID == nil:
		// assigned -> unassigned
		b.shiftAssigned(-1)
	default:
		// table change or no-op: global counts are unaffected, the
		// per-table adjustments above already did the work.
	}
}

// shiftAssigned moves one guest between the assigned and unassigned
// buckets.  The primary counters are clamped to their theoretical range and
// the dependent fields are re-derived from them, which keeps the invariant
// assigned + unassigned == total even when a delta is applied twice.
func (b *Board) shiftAssigned(n int) {
	s := &b.stats
	s.AssignedGuests = clamp(s.AssignedGuests+n, 0, s.TotalGuests)
	s.UnassignedGuests = s.TotalGuests - s.AssignedGuests
	s.TotalOccupied = clamp(s.TotalOccupied+n, 0, s.TotalCapacity)
	s.AvailableSeats = s.TotalCapacity - s.TotalOccupied
	if s.TotalGuests > 0 {
		s.PercentageAssigned = float64(s.AssignedGuests) / float64(s.TotalGuests) * 100
	} else {
		s.PercentageAssigned = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Summaries returns all tables with derived fields computed, in snapshot
// order.
func (b *Board) Summaries() []model.TableSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.TableSummary, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.tables[id].Summary())
	}
	return out
}

// Stats returns a copy of the aggregate statistics.
func (b *Board) Stats() model.TableStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Table returns a copy of a single table's state.
func (b *Board) Table(id uint64) (model.Table, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tables[id]
	if !ok {
		return model.Table{}, false
	}
	return *t, true
}

// tableName looks up a table's display name without copying the whole
// struct; used by the coordinator when building deltas.
func (b *Board) tableName(id uint64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tables[id]
	if !ok {
		return "", false
	}
	return t.TableName, true
}
