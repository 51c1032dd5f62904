package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// EventRepo reads the wedding itinerary shown on invitation pages.  Events
// are seeded by migration and never mutated through the API, so only a
// list operation exists.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// List retrieves all events in chronological order.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT id, name, date_time, venue, address, requires_confirmation
	           FROM events ORDER BY date_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.DateTime, &e.Venue, &e.Address, &e.RequiresConfirmation); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
