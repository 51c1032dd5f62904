package model

import "testing"

func TestAvailableSeats(t *testing.T) {
	cases := []struct {
		name string
		occ  uint32
		cap  uint32
		want uint32
	}{
		{"empty", 0, 8, 8},
		{"partial", 3, 8, 5},
		{"full", 8, 8, 0},
		{"over capacity clamps to zero", 9, 8, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl := Table{MaxCapacity: tc.cap, CurrentOccupancy: tc.occ}
			if got := tbl.AvailableSeats(); got != tc.want {
				t.Fatalf("AvailableSeats() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPercentageOccupied(t *testing.T) {
	tbl := Table{MaxCapacity: 8, CurrentOccupancy: 2}
	if got := tbl.PercentageOccupied(); got != 25 {
		t.Fatalf("PercentageOccupied() = %v, want 25", got)
	}
	zero := Table{}
	if got := zero.PercentageOccupied(); got != 0 {
		t.Fatalf("zero capacity percentage = %v, want 0", got)
	}
}

func TestIsHonorTable(t *testing.T) {
	honor := Table{TableName: "Honor"}
	if !honor.IsHonorTable() {
		t.Error("Honor not recognized")
	}
	// Match is exact, not a prefix or case-insensitive.
	for _, name := range []string{"honor", "Honorable", "Mesa Honor"} {
		tbl := Table{TableName: name}
		if tbl.IsHonorTable() {
			t.Errorf("%q recognized as honor table", name)
		}
	}
}

func TestSummaryDerivedFields(t *testing.T) {
	tbl := Table{ID: 2, TableNumber: 2, TableName: "Mesa 2", MaxCapacity: 8, CurrentOccupancy: 8}
	s := tbl.Summary()
	if !s.IsFull || s.AvailableSeats != 0 || s.PercentageOccupied != 100 {
		t.Fatalf("summary = %+v", s)
	}
	if s.IsHonorTable {
		t.Error("Mesa 2 flagged as honor table")
	}
}

func TestFamilyStatus(t *testing.T) {
	yes, no := true, false
	cases := []struct {
		name string
		f    Family
		want string
	}{
		{"not sent", Family{}, "PENDING"},
		{"sent not responded", Family{InvitationSent: true}, "SENT"},
		{"confirmed", Family{InvitationSent: true, Responded: true, Attending: &yes}, "CONFIRMED"},
		{"declined", Family{InvitationSent: true, Responded: true, Attending: &no}, "DECLINED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Status(); got != tc.want {
				t.Fatalf("Status() = %q, want %q", got, tc.want)
			}
		})
	}
}
