package handler

import "testing"

func ptr(v uint64) *uint64 { return &v }

func TestTableLockOrder(t *testing.T) {
	cases := []struct {
		name  string
		oldID *uint64
		newID *uint64
		want  []uint64
	}{
		{"fresh assignment", nil, ptr(3), []uint64{3}},
		{"unassign", ptr(3), nil, []uint64{3}},
		{"move ascending", ptr(1), ptr(2), []uint64{1, 2}},
		{"move descending locks ascending", ptr(2), ptr(1), []uint64{1, 2}},
		{"same table locked once", ptr(5), ptr(5), []uint64{5}},
		{"no tables", nil, nil, []uint64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tableLockOrder(tc.oldID, tc.newID)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("order = %v, want %v", got, tc.want)
				}
			}
		})
	}
}
