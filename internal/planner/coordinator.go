package planner

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// AssignmentAPI is the remote operation the coordinator confirms changes
// against.  A nil tableID unassigns the guest.  The concrete implementation
// lives in internal/client; tests substitute a fake.
type AssignmentAPI interface {
	AssignGuestToTable(ctx context.Context, guestID uint64, tableID *uint64) error
}

// ErrAssignmentPending is returned when an assignment is attempted for a
// guest whose previous assignment has not settled yet.  Operations on
// different guests are independent and may run concurrently.
var ErrAssignmentPending = errors.New("assignment already in flight for this guest")

// ErrUnknownTable is returned when the requested table is not present in
// the board's registry.  The server would reject the call anyway; failing
// locally avoids mutating the guest record with a name we cannot resolve.
var ErrUnknownTable = errors.New("unknown table")

// Coordinator makes table reassignment feel instantaneous while preserving
// correctness under failure.  Each attempt walks a small state machine per
// guest: the old assignment is captured, the guest record is mutated
// optimistically, the confirming request is issued, and on failure the
// captured state is restored exactly.  Only the committed delta ever
// reaches the board, so aggregate state is never updated speculatively.
type Coordinator struct {
	api   AssignmentAPI
	board *Board

	mu      sync.Mutex
	pending map[uint64]struct{}
}

// NewCoordinator wires a coordinator to its API and board.
func NewCoordinator(api AssignmentAPI, board *Board) *Coordinator {
	if api == nil || board == nil {
		panic("nil dependency passed to NewCoordinator")
	}
	return &Coordinator{api: api, board: board, pending: make(map[uint64]struct{})}
}

// Pending reports whether an assignment for the guest is in flight.  The
// admin UI uses this to disable the row's controls.
func (co *Coordinator) Pending(guestID uint64) bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	_, ok := co.pending[guestID]
	return ok
}

// Assign moves a guest to newTableID (nil to unassign), mutating the guest
// record optimistically and rolling it back if the remote call fails.  On
// success the resulting delta is applied to the board and returned.  The
// returned error is the API's own error, so callers can distinguish
// validation failures from transport failures and surface the message next
// to the affected row.
func (co *Coordinator) Assign(ctx context.Context, g *model.GuestAssignment, newTableID *uint64) (Delta, error) {
	co.mu.Lock()
	if _, busy := co.pending[g.ID]; busy {
		co.mu.Unlock()
		return Delta{}, ErrAssignmentPending
	}
	co.pending[g.ID] = struct{}{}
	co.mu.Unlock()

	defer func() {
		co.mu.Lock()
		delete(co.pending, g.ID)
		co.mu.Unlock()
	}()

	// Capture prior state before touching anything.
	oldTableID := g.TableID
	oldTableName := g.TableName

	var newTableName *string
	if newTableID != nil {
		name, ok := co.board.tableName(*newTableID)
		if !ok {
			return Delta{}, ErrUnknownTable
		}
		newTableName = &name
	}

	// Optimistic local mutation: the row shows the new table immediately.
	g.TableID = newTableID
	g.TableName = newTableName

	if err := co.api.AssignGuestToTable(ctx, g.ID, newTableID); err != nil {
		// Roll back to the captured state; the aggregate side was never
		// touched, so nothing else needs undoing.
		g.TableID = oldTableID
		g.TableName = oldTableName
		return Delta{}, err
	}

	d := Delta{
		GuestID:      g.ID,
		OldTableID:   oldTableID,
		NewTableID:   newTableID,
		NewTableName: newTableName,
	}
	co.board.Apply(d)
	return d, nil
}
