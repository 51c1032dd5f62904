package model

import "time"

// HonorTableName is the reserved designation for the couple's table.  A
// table carrying this name is rendered with special treatment by admin
// clients but behaves like any other table for capacity accounting.
const HonorTableName = "Honor"

// Table represents a seating unit at the reception.  MaxCapacity is fixed
// when the table is seeded; CurrentOccupancy is derived by counting guests
// assigned to the table and is never stored in the database.
//
// Fields:
//  ID               – primary key identifier.
//  TableNumber      – ordinal used for sorting and display.
//  TableName        – human readable name (e.g. "Mesa 3", "Honor").
//  MaxCapacity      – maximum number of seats (positive).
//  CurrentOccupancy – number of guests currently assigned.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Table struct {
	ID               uint64    // seating_tables.id
	TableNumber      uint32    // seating_tables.table_number
	TableName        string    // seating_tables.table_name
	MaxCapacity      uint32    // seating_tables.max_capacity
	CurrentOccupancy uint32    // derived: COUNT(guests.table_id)
	CreatedAt        time.Time // seating_tables.created_at
	UpdatedAt        time.Time // seating_tables.updated_at
}

// AvailableSeats returns the number of free seats.  Occupancy above
// capacity (which the clamping in the planner prevents, but a stale
// snapshot could carry) yields zero rather than wrapping.
func (t *Table) AvailableSeats() uint32 {
	if t.CurrentOccupancy >= t.MaxCapacity {
		return 0
	}
	return t.MaxCapacity - t.CurrentOccupancy
}

// PercentageOccupied returns occupancy as a percentage of capacity.
func (t *Table) PercentageOccupied() float64 {
	if t.MaxCapacity == 0 {
		return 0
	}
	return float64(t.CurrentOccupancy) / float64(t.MaxCapacity) * 100
}

// IsFull reports whether the table has no free seats left.
func (t *Table) IsFull() bool {
	return t.CurrentOccupancy >= t.MaxCapacity
}

// IsHonorTable reports whether this is the reserved honor table.
func (t *Table) IsHonorTable() bool {
	return t.TableName == HonorTableName
}

// TableSummary is the wire representation of a table including its derived
// fields.  Derived values are computed at serialization time via Summary so
// they can never drift from the base state.
type TableSummary struct {
	ID                 uint64  `json:"id"`
	TableNumber        uint32  `json:"tableNumber"`
	TableName          string  `json:"tableName"`
	MaxCapacity        uint32  `json:"maxCapacity"`
	CurrentOccupancy   uint32  `json:"currentOccupancy"`
	AvailableSeats     uint32  `json:"availableSeats"`
	PercentageOccupied float64 `json:"percentageOccupied"`
	IsFull             bool    `json:"isFull"`
	IsHonorTable       bool    `json:"isHonorTable"`
}

// Summary builds the wire representation with all derived fields filled in.
func (t *Table) Summary() TableSummary {
	return TableSummary{
		ID:                 t.ID,
		TableNumber:        t.TableNumber,
		TableName:          t.TableName,
		MaxCapacity:        t.MaxCapacity,
		CurrentOccupancy:   t.CurrentOccupancy,
		AvailableSeats:     t.AvailableSeats(),
		PercentageOccupied: t.PercentageOccupied(),
		IsFull:             t.IsFull(),
		IsHonorTable:       t.IsHonorTable(),
	}
}

// AvailableTable is the wire representation used to populate assignment
// dropdowns.  Display carries a preformatted label such as "Mesa 3 (4 seats
// left)" so clients do not have to format it themselves.
type AvailableTable struct {
	ID             uint64 `json:"id"`
	TableName      string `json:"tableName"`
	AvailableSeats uint32 `json:"availableSeats"`
	Display        string `json:"display"`
}

// TableStats aggregates seating progress across all tables and guests.
// Invariant: AssignedGuests + UnassignedGuests == TotalGuests, and
// TotalOccupied equals the sum of all tables' occupancy.
type TableStats struct {
	TotalGuests        int     `json:"totalGuests"`
	AssignedGuests     int     `json:"assignedGuests"`
	UnassignedGuests   int     `json:"unassignedGuests"`
	TotalCapacity      int     `json:"totalCapacity"`
	TotalOccupied      int     `json:"totalOccupied"`
	AvailableSeats     int     `json:"availableSeats"`
	PercentageAssigned float64 `json:"percentageAssigned"`
}

// TableRoster is the guest list of a single table as returned by
// GET /v1/tables/:id/guests.
type TableRoster struct {
	ID               uint64        `json:"id"`
	TableName        string        `json:"tableName"`
	CurrentOccupancy uint32        `json:"currentOccupancy"`
	MaxCapacity      uint32        `json:"maxCapacity"`
	Guests           []RosterGuest `json:"guests"`
}

// RosterGuest is a single seated guest within a TableRoster.
type RosterGuest struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	IsChild    bool   `json:"isChild"`
	FamilyName string `json:"familyName"`
	Notes      string `json:"notes"`
}
