package repository // repository defines data access for seating tables

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions

	"github.com/iliyamo/wedding-planner/internal/model"
)

// ErrTableNotFound is returned when a table lookup yields no rows.
var ErrTableNotFound = errors.New("table not found")

// TableRepo provides methods to work with seating tables.  Occupancy is
// never stored: every read derives it by counting the guests whose
// table_id references the table, so stored and computed values cannot
// diverge.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span tables and guests.
func (r *TableRepo) DB() *sql.DB { return r.db }

// ListWithOccupancy retrieves all tables with their derived occupancy,
// ordered by table number.
func (r *TableRepo) ListWithOccupancy(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT t.id, t.table_number, t.table_name, t.max_capacity,
	                  COUNT(g.id) AS occupancy, t.created_at, t.updated_at
	           FROM seating_tables t
	           LEFT JOIN guests g ON g.table_id = t.id
	           GROUP BY t.id, t.table_number, t.table_name, t.max_capacity, t.created_at, t.updated_at
	           ORDER BY t.table_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Table
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(
			&t.ID, &t.TableNumber, &t.TableName, &t.MaxCapacity,
			&t.CurrentOccupancy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetWithOccupancy retrieves a single table with its derived occupancy.
func (r *TableRepo) GetWithOccupancy(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT t.id, t.table_number, t.table_name, t.max_capacity,
	                  COUNT(g.id) AS occupancy, t.created_at, t.updated_at
	           FROM seating_tables t
	           LEFT JOIN guests g ON g.table_id = t.id
	           WHERE t.id = ?
	           GROUP BY t.id, t.table_number, t.table_name, t.max_capacity, t.created_at, t.updated_at`
	var t model.Table
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.TableNumber, &t.TableName, &t.MaxCapacity,
		&t.CurrentOccupancy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetForUpdateTx locks a table row within a transaction and returns it
// with its occupancy counted inside the same transaction.  This is the
// authoritative capacity check: two admins racing for the last seat
// serialize on the row lock and the loser sees the table already full.
func (r *TableRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
	const q = `SELECT id, table_number, table_name, max_capacity, created_at, updated_at
	           FROM seating_tables WHERE id = ? FOR UPDATE`
	var t model.Table
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.TableNumber, &t.TableName, &t.MaxCapacity, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	const cnt = `SELECT COUNT(*) FROM guests WHERE table_id = ?`
	if err := tx.QueryRowContext(ctx, cnt, id).Scan(&t.CurrentOccupancy); err != nil {
		return nil, err
	}
	return &t, nil
}

// Stats computes the aggregate seating statistics in a single snapshot.
// Assigned guests equal total occupied seats by definition (one guest, one
// seat), so both come from the same count.
func (r *TableRepo) Stats(ctx context.Context) (model.TableStats, error) {
	var s model.TableStats
	const guestQ = `SELECT COUNT(*), COALESCE(SUM(table_id IS NOT NULL), 0) FROM guests`
	if err := r.db.QueryRowContext(ctx, guestQ).Scan(&s.TotalGuests, &s.AssignedGuests); err != nil {
		return model.TableStats{}, err
	}
	const capQ = `SELECT COALESCE(SUM(max_capacity), 0) FROM seating_tables`
	if err := r.db.QueryRowContext(ctx, capQ).Scan(&s.TotalCapacity); err != nil {
		return model.TableStats{}, err
	}
	s.UnassignedGuests = s.TotalGuests - s.AssignedGuests
	s.TotalOccupied = s.AssignedGuests
	s.AvailableSeats = s.TotalCapacity - s.TotalOccupied
	if s.TotalGuests > 0 {
		s.PercentageAssigned = float64(s.AssignedGuests) / float64(s.TotalGuests) * 100
	}
	return s, nil
}

// Roster retrieves a table together with its seated guests ordered by name.
func (r *TableRepo) Roster(ctx context.Context, id uint64) (*model.TableRoster, error) {
	t, err := r.GetWithOccupancy(ctx, id)
	if err != nil {
		return nil, err
	}
	roster := &model.TableRoster{
		ID:               t.ID,
		TableName:        t.TableName,
		CurrentOccupancy: t.CurrentOccupancy,
		MaxCapacity:      t.MaxCapacity,
		Guests:           []model.RosterGuest{},
	}
	const q = `SELECT g.id, g.name, g.is_child, f.family_name, g.notes
	           FROM guests g
	           JOIN families f ON f.id = g.family_id
	           WHERE g.table_id = ?
	           ORDER BY g.name`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var g model.RosterGuest
		var notes sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.IsChild, &g.FamilyName, &notes); err != nil {
			return nil, err
		}
		g.Notes = notes.String
		roster.Guests = append(roster.Guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roster, nil
}
