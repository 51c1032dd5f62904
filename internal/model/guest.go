package model

import "time"

// Guest represents a single invited person.  Every guest belongs to exactly
// one family and sits at most at one table (TableID nil means unassigned).
//
// Fields:
//  ID        – primary key identifier.
//  FamilyID  – family the guest belongs to.
//  Name      – display name.
//  IsChild   – child/adult flag (affects catering, not capacity).
//  Country   – country of origin, display only.
//  Notes     – free-text notes (allergies, seating wishes, ...).
//  TableID   – assigned table (nil when unassigned).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Guest struct {
	ID        uint64    // guests.id
	FamilyID  uint64    // guests.family_id
	Name      string    // guests.name
	IsChild   bool      // guests.is_child
	Country   string    // guests.country
	Notes     string    // guests.notes
	TableID   *uint64   // guests.table_id (nullable)
	CreatedAt time.Time // guests.created_at
	UpdatedAt time.Time // guests.updated_at
}

// GuestInfo is the wire representation of a guest record.
type GuestInfo struct {
	ID       uint64  `json:"id"`
	FamilyID uint64  `json:"familyId"`
	Name     string  `json:"name"`
	IsChild  bool    `json:"isChild"`
	Country  string  `json:"country"`
	Notes    string  `json:"notes"`
	TableID  *uint64 `json:"tableId"`
}

// Info builds the wire representation of the guest.
func (g *Guest) Info() GuestInfo {
	return GuestInfo{
		ID:       g.ID,
		FamilyID: g.FamilyID,
		Name:     g.Name,
		IsChild:  g.IsChild,
		Country:  g.Country,
		Notes:    g.Notes,
		TableID:  g.TableID,
	}
}

// GuestAssignment is the wire representation of a guest row in the
// assignment view.  TableID and TableName are nil for unassigned guests.
// The admin client mutates these two fields optimistically and restores
// them when the confirming request fails.
type GuestAssignment struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	IsChild    bool    `json:"isChild"`
	FamilyName string  `json:"familyName"`
	Country    string  `json:"country"`
	Notes      string  `json:"notes"`
	TableID    *uint64 `json:"tableId"`
	TableName  *string `json:"tableName"`
}

// Pagination describes one page of a paginated listing.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// GuestAssignmentPage is the response of
// GET /v1/families/guests-for-assignment.
type GuestAssignmentPage struct {
	Data       []GuestAssignment `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
