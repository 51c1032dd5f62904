package planner

import (
	"testing"

	"github.com/iliyamo/wedding-planner/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func testTables() []model.Table {
	return []model.Table{
		{ID: 1, TableNumber: 1, TableName: "Honor", MaxCapacity: 6, CurrentOccupancy: 2},
		{ID: 2, TableNumber: 2, TableName: "Mesa 2", MaxCapacity: 8, CurrentOccupancy: 8},
		{ID: 3, TableNumber: 3, TableName: "Mesa 3", MaxCapacity: 10, CurrentOccupancy: 4},
	}
}

func testStats() model.TableStats {
	return model.TableStats{
		TotalGuests:        20,
		AssignedGuests:     14,
		UnassignedGuests:   6,
		TotalCapacity:      24,
		TotalOccupied:      14,
		AvailableSeats:     10,
		PercentageAssigned: 70,
	}
}

func statsInvariant(t *testing.T, s model.TableStats) {
	t.Helper()
	if s.AssignedGuests+s.UnassignedGuests != s.TotalGuests {
		t.Fatalf("assigned %d + unassigned %d != total %d", s.AssignedGuests, s.UnassignedGuests, s.TotalGuests)
	}
	if s.TotalOccupied+s.AvailableSeats != s.TotalCapacity {
		t.Fatalf("occupied %d + available %d != capacity %d", s.TotalOccupied, s.AvailableSeats, s.TotalCapacity)
	}
}

func TestApplyUnassignedToAssigned(t *testing.T) {
	b := NewBoard(testTables(), testStats())

	b.Apply(Delta{GuestID: 7, NewTableID: u64(3)})

	tbl, ok := b.Table(3)
	if !ok {
		t.Fatal("table 3 missing")
	}
	if tbl.CurrentOccupancy != 5 {
		t.Fatalf("occupancy = %d, want 5", tbl.CurrentOccupancy)
	}
	s := b.Stats()
	if s.AssignedGuests != 15 || s.UnassignedGuests != 5 {
		t.Fatalf("assigned/unassigned = %d/%d, want 15/5", s.AssignedGuests, s.UnassignedGuests)
	}
	if s.TotalOccupied != 15 || s.AvailableSeats != 9 {
		t.Fatalf("occupied/available = %d/%d, want 15/9", s.TotalOccupied, s.AvailableSeats)
	}
	if s.PercentageAssigned != 75 {
		t.Fatalf("percentage = %v, want 75", s.PercentageAssigned)
	}
	statsInvariant(t, s)
}

func TestApplyAssignedToUnassigned(t *testing.T) {
	b := NewBoard(testTables(), testStats())

	b.Apply(Delta{GuestID: 7, OldTableID: u64(3)})

	tbl, _ := b.Table(3)
	if tbl.CurrentOccupancy != 3 {
		t.Fatalf("occupancy = %d, want 3", tbl.CurrentOccupancy)
	}
	s := b.Stats()
	if s.AssignedGuests != 13 || s.UnassignedGuests != 7 {
		t.Fatalf("assigned/unassigned = %d/%d, want 13/7", s.AssignedGuests, s.UnassignedGuests)
	}
	statsInvariant(t, s)
}

func TestApplyAssignThenUnassignRestoresState(t *testing.T) {
	b := NewBoard(testTables(), testStats())
	before := b.Stats()

	b.Apply(Delta{GuestID: 7, NewTableID: u64(3)})
	b.Apply(Delta{GuestID: 7, OldTableID: u64(3)})

	if after := b.Stats(); after != before {
		t.Fatalf("stats = %+v, want pre-assignment %+v", after, before)
	}
	for _, want := range testTables() {
		got, ok := b.Table(want.ID)
		if !ok {
			t.Fatalf("table %d missing", want.ID)
		}
		if got.CurrentOccupancy != want.CurrentOccupancy {
			t.Fatalf("table %d occupancy = %d, want pre-assignment %d", want.ID, got.CurrentOccupancy, want.CurrentOccupancy)
		}
	}
}

func TestApplyTableChangeKeepsGlobalCounts(t *testing.T) {
	b := NewBoard(testTables(), testStats())
	before := b.Stats()

	b.Apply(Delta{GuestID: 7, OldTableID: u64(1), NewTableID: u64(3)})

	from, _ := b.Table(1)
	to, _ := b.Table(3)
	if from.CurrentOccupancy != 1 {
		t.Fatalf("old table occupancy = %d, want 1", from.CurrentOccupancy)
	}
	if to.CurrentOccupancy != 5 {
		t.Fatalf("new table occupancy = %d, want 5", to.CurrentOccupancy)
	}
	after := b.Stats()
	if after != before {
		t.Fatalf("global stats changed on table move: %+v -> %+v", before, after)
	}
}

func TestApplySameTableIsNoOp(t *testing.T) {
	b := NewBoard(testTables(), testStats())
	before := b.Stats()

	b.Apply(Delta{GuestID: 7, OldTableID: u64(3), NewTableID: u64(3)})

	tbl, _ := b.Table(3)
	if tbl.CurrentOccupancy != 4 {
		t.Fatalf("occupancy = %d, want 4 (unchanged)", tbl.CurrentOccupancy)
	}
	if after := b.Stats(); after != before {
		t.Fatalf("stats changed: %+v -> %+v", before, after)
	}
}

func TestApplyClampsAtBounds(t *testing.T) {
	b := NewBoard([]model.Table{
		{ID: 1, TableName: "Mesa 1", MaxCapacity: 2, CurrentOccupancy: 2},
		{ID: 2, TableName: "Mesa 2", MaxCapacity: 2, CurrentOccupancy: 0},
	}, model.TableStats{TotalGuests: 2, AssignedGuests: 2, TotalCapacity: 4, TotalOccupied: 2, AvailableSeats: 2, PercentageAssigned: 100})

	// Duplicate increment against a full table must not exceed capacity.
	b.Apply(Delta{GuestID: 1, NewTableID: u64(1)})
	full, _ := b.Table(1)
	if full.CurrentOccupancy != 2 {
		t.Fatalf("occupancy = %d, want clamp at capacity 2", full.CurrentOccupancy)
	}

	// Duplicate decrement against an empty table must not go negative.
	b.Apply(Delta{GuestID: 2, OldTableID: u64(2)})
	b.Apply(Delta{GuestID: 2, OldTableID: u64(2)})
	empty, _ := b.Table(2)
	if empty.CurrentOccupancy != 0 {
		t.Fatalf("occupancy = %d, want clamp at 0", empty.CurrentOccupancy)
	}
	statsInvariant(t, b.Stats())
}

func TestApplyUnknownTableIgnored(t *testing.T) {
	b := NewBoard(testTables(), testStats())

	b.Apply(Delta{GuestID: 7, OldTableID: u64(99), NewTableID: u64(98)})

	for _, id := range []uint64{1, 2, 3} {
		got, _ := b.Table(id)
		for _, want := range testTables() {
			if want.ID == id && got.CurrentOccupancy != want.CurrentOccupancy {
				t.Fatalf("table %d occupancy = %d, want %d", id, got.CurrentOccupancy, want.CurrentOccupancy)
			}
		}
	}
}

func TestReplaceResetsState(t *testing.T) {
	b := NewBoard(testTables(), testStats())
	b.Apply(Delta{GuestID: 7, NewTableID: u64(3)})

	fresh := testStats()
	b.Replace(testTables(), fresh)

	if s := b.Stats(); s != fresh {
		t.Fatalf("stats = %+v, want snapshot %+v", s, fresh)
	}
	tbl, _ := b.Table(3)
	if tbl.CurrentOccupancy != 4 {
		t.Fatalf("occupancy = %d, want snapshot value 4", tbl.CurrentOccupancy)
	}
}

func TestSummariesPreserveOrderAndDerived(t *testing.T) {
	b := NewBoard(testTables(), testStats())
	sums := b.Summaries()
	if len(sums) != 3 {
		t.Fatalf("len = %d, want 3", len(sums))
	}
	if sums[0].ID != 1 || sums[1].ID != 2 || sums[2].ID != 3 {
		t.Fatalf("order = %d,%d,%d, want 1,2,3", sums[0].ID, sums[1].ID, sums[2].ID)
	}
	if !sums[0].IsHonorTable {
		t.Error("table Honor not flagged as honor table")
	}
	if sums[1].IsHonorTable {
		t.Error("Mesa 2 flagged as honor table")
	}
	if !sums[1].IsFull || sums[1].AvailableSeats != 0 {
		t.Errorf("Mesa 2 full=%v available=%d, want true/0", sums[1].IsFull, sums[1].AvailableSeats)
	}
	if sums[2].PercentageOccupied != 40 {
		t.Errorf("Mesa 3 percentage = %v, want 40", sums[2].PercentageOccupied)
	}
}

func TestOptionsForExcludesFullTables(t *testing.T) {
	b := NewBoard(testTables(), testStats())

	opts := b.OptionsFor(nil)
	for _, o := range opts {
		if o.ID == 2 {
			t.Fatal("full table 2 offered to an unassigned guest")
		}
	}
	if len(opts) != 2 {
		t.Fatalf("len = %d, want 2", len(opts))
	}
	if opts[0].Display != "Honor (4 seats left)" {
		t.Fatalf("display = %q", opts[0].Display)
	}
}

func TestOptionsForKeepsFullCurrentTable(t *testing.T) {
	b := NewBoard(testTables(), testStats())

	opts := b.OptionsFor(u64(2))
	var found *TableOption
	for i := range opts {
		if opts[i].ID == 2 {
			found = &opts[i]
		}
	}
	if found == nil {
		t.Fatal("guest's own full table missing from options")
	}
	if !found.IsCurrent || !found.IsFull {
		t.Fatalf("current/full = %v/%v, want true/true", found.IsCurrent, found.IsFull)
	}
	if found.Display != "Mesa 2 (full)" {
		t.Fatalf("display = %q, want %q", found.Display, "Mesa 2 (full)")
	}
}

func TestShiftAssignedClampsAndRederives(t *testing.T) {
	b := NewBoard(nil, model.TableStats{TotalGuests: 1, AssignedGuests: 1, TotalCapacity: 2, TotalOccupied: 1, AvailableSeats: 1, PercentageAssigned: 100})

	// Applying the same unassign twice must not underflow.
	b.Apply(Delta{GuestID: 1, OldTableID: u64(1)})
	b.Apply(Delta{GuestID: 1, OldTableID: u64(1)})

	s := b.Stats()
	if s.AssignedGuests != 0 || s.UnassignedGuests != 1 {
		t.Fatalf("assigned/unassigned = %d/%d, want 0/1", s.AssignedGuests, s.UnassignedGuests)
	}
	if s.PercentageAssigned != 0 {
		t.Fatalf("percentage = %v, want 0", s.PercentageAssigned)
	}
	statsInvariant(t, s)
}
