package model

import "time"

// Event is one entry of the wedding itinerary shown on the invitation page
// (ceremony, reception, ...).  Events are seeded once and never mutated
// through the API.
type Event struct {
	ID                   uint64    // events.id
	Name                 string    // events.name
	DateTime             time.Time // events.date_time
	Venue                string    // events.venue
	Address              string    // events.address
	RequiresConfirmation bool      // events.requires_confirmation
}

// EventInfo is the wire representation of an itinerary entry.
type EventInfo struct {
	ID                   uint64    `json:"id"`
	Name                 string    `json:"name"`
	DateTime             time.Time `json:"dateTime"`
	Venue                string    `json:"venue"`
	Address              string    `json:"address"`
	RequiresConfirmation bool      `json:"requiresConfirmation"`
}

// Info builds the wire representation of the event.
func (e *Event) Info() EventInfo {
	return EventInfo{
		ID:                   e.ID,
		Name:                 e.Name,
		DateTime:             e.DateTime,
		Venue:                e.Venue,
		Address:              e.Address,
		RequiresConfirmation: e.RequiresConfirmation,
	}
}
