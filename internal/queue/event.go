// Package queue defines message payloads exchanged over the message broker.
package queue

// AssignmentChangedEvent is published whenever a guest's table assignment
// changes.  It carries enough context for downstream consumers to log or
// notify without querying the primary database.  A nil table means the
// guest was moved off that side of the change (unassigned before, or
// unassigned after).
type AssignmentChangedEvent struct {
    GuestID      uint64  `json:"guest_id"`
    GuestName    string  `json:"guest_name"`
    FamilyName   string  `json:"family_name"`
    OldTableID   *uint64 `json:"old_table_id"`
    OldTableName *string `json:"old_table_name"`
    NewTableID   *uint64 `json:"new_table_id"`
    NewTableName *string `json:"new_table_name"`
    ChangedBy    uint64  `json:"changed_by"`
    ChangedAt    string  `json:"changed_at"`
}

// RSVPRespondedEvent is published when a family answers their invitation.
type RSVPRespondedEvent struct {
    FamilyID    uint64 `json:"family_id"`
    FamilyName  string `json:"family_name"`
    Attending   bool   `json:"attending"`
    GuestCount  int    `json:"guest_count"`
    RespondedAt string `json:"responded_at"`
}
