package planner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/wedding-planner/internal/model"
)

type fakeAPI struct {
	mu      sync.Mutex
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeAPI) AssignGuestToTable(ctx context.Context, guestID uint64, tableID *uint64) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func newGuest(id uint64, tableID *uint64, tableName *string) *model.GuestAssignment {
	return &model.GuestAssignment{ID: id, Name: "Ana", FamilyName: "García", TableID: tableID, TableName: tableName}
}

func TestAssignSuccessAppliesDelta(t *testing.T) {
	api := &fakeAPI{}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	g := newGuest(7, nil, nil)
	d, err := co.Assign(context.Background(), g, u64(3))
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if g.TableID == nil || *g.TableID != 3 {
		t.Fatalf("guest tableID = %v, want 3", g.TableID)
	}
	if g.TableName == nil || *g.TableName != "Mesa 3" {
		t.Fatalf("guest tableName = %v, want Mesa 3", g.TableName)
	}
	if d.NewTableID == nil || *d.NewTableID != 3 || d.OldTableID != nil {
		t.Fatalf("delta = %+v", d)
	}
	tbl, _ := board.Table(3)
	if tbl.CurrentOccupancy != 5 {
		t.Fatalf("board occupancy = %d, want 5", tbl.CurrentOccupancy)
	}
}

func TestAssignFailureRollsBackGuest(t *testing.T) {
	api := &fakeAPI{err: errors.New("table is full")}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	name := "Honor"
	g := newGuest(7, u64(1), &name)
	before := board.Stats()

	_, err := co.Assign(context.Background(), g, u64(3))
	if err == nil {
		t.Fatal("expected error")
	}
	if g.TableID == nil || *g.TableID != 1 {
		t.Fatalf("guest tableID = %v, want restored 1", g.TableID)
	}
	if g.TableName == nil || *g.TableName != "Honor" {
		t.Fatalf("guest tableName = %v, want restored Honor", g.TableName)
	}
	// Aggregates were never touched speculatively.
	if after := board.Stats(); after != before {
		t.Fatalf("stats mutated on failure: %+v -> %+v", before, after)
	}
	tbl, _ := board.Table(3)
	if tbl.CurrentOccupancy != 4 {
		t.Fatalf("board occupancy = %d, want unchanged 4", tbl.CurrentOccupancy)
	}
}

func TestAssignUnassignClearsGuest(t *testing.T) {
	api := &fakeAPI{}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	name := "Mesa 3"
	g := newGuest(7, u64(3), &name)
	d, err := co.Assign(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if g.TableID != nil || g.TableName != nil {
		t.Fatalf("guest = %v/%v, want nil/nil", g.TableID, g.TableName)
	}
	if d.NewTableID != nil || d.OldTableID == nil {
		t.Fatalf("delta = %+v", d)
	}
	s := board.Stats()
	if s.AssignedGuests != 13 {
		t.Fatalf("assigned = %d, want 13", s.AssignedGuests)
	}
}

func TestAssignUnknownTableFailsLocally(t *testing.T) {
	api := &fakeAPI{}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	g := newGuest(7, nil, nil)
	_, err := co.Assign(context.Background(), g, u64(42))
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("err = %v, want ErrUnknownTable", err)
	}
	if api.calls != 0 {
		t.Fatalf("api called %d times, want 0", api.calls)
	}
	if g.TableID != nil {
		t.Fatalf("guest mutated: %v", g.TableID)
	}
}

func TestAssignRejectsConcurrentSameGuest(t *testing.T) {
	api := &fakeAPI{started: make(chan struct{}, 1), release: make(chan struct{})}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	g := newGuest(7, nil, nil)
	done := make(chan error, 1)
	go func() {
		_, err := co.Assign(context.Background(), g, u64(3))
		done <- err
	}()
	<-api.started

	if !co.Pending(7) {
		t.Fatal("Pending(7) = false while in flight")
	}
	// Second attempt for the same guest while the first is in flight.
	_, err := co.Assign(context.Background(), newGuest(7, nil, nil), u64(1))
	if !errors.Is(err, ErrAssignmentPending) {
		t.Fatalf("err = %v, want ErrAssignmentPending", err)
	}

	close(api.release)
	if err := <-done; err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if co.Pending(7) {
		t.Fatal("Pending(7) = true after settle")
	}
}

func TestAssignDifferentGuestsIndependent(t *testing.T) {
	api := &fakeAPI{started: make(chan struct{}, 2), release: make(chan struct{})}
	board := NewBoard(testTables(), testStats())
	co := NewCoordinator(api, board)

	first := make(chan error, 1)
	go func() {
		_, err := co.Assign(context.Background(), newGuest(7, nil, nil), u64(3))
		first <- err
	}()
	<-api.started

	second := make(chan error, 1)
	go func() {
		_, err := co.Assign(context.Background(), newGuest(8, nil, nil), u64(1))
		second <- err
	}()
	<-api.started

	close(api.release)
	if err := <-first; err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second: %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("api calls = %d, want 2", api.calls)
	}
}
