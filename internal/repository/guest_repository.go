package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// ErrGuestNotFound is returned when a guest lookup yields no rows.
var ErrGuestNotFound = errors.New("guest not found")

// GuestRepo provides methods to work with guests in the database.  The
// table reference (guests.table_id) is only ever mutated through
// SetTableTx so that capacity checks and the update share one transaction.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// DB exposes the underlying handle for handler-scoped transactions.
func (r *GuestRepo) DB() *sql.DB { return r.db }

// Create inserts a guest record. On success the guest's ID is populated.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (family_id, name, is_child, country, notes)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.FamilyID, g.Name, g.IsChild, g.Country, g.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update modifies a guest's editable attributes.  The table reference is
// deliberately excluded; use SetTableTx for that.
// Returns sql.ErrNoRows when the guest does not exist.
func (r *GuestRepo) Update(ctx context.Context, id uint64, name string, isChild bool, country, notes string) error {
	const q = `UPDATE guests
	           SET name = ?, is_child = ?, country = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, isChild, country, notes, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByID retrieves a guest by its id.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT id, family_id, name, is_child, country, notes, table_id, created_at, updated_at
	           FROM guests WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetForUpdateTx locks a guest row within a transaction.  The lock keeps a
// concurrent reassignment of the same guest from interleaving with ours.
func (r *GuestRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Guest, error) {
	const q = `SELECT id, family_id, name, is_child, country, notes, table_id, created_at, updated_at
	           FROM guests WHERE id = ? FOR UPDATE`
	return r.scanOne(tx.QueryRowContext(ctx, q, id))
}

func (r *GuestRepo) scanOne(row *sql.Row) (*model.Guest, error) {
	var g model.Guest
	var country, notes sql.NullString
	var tableID sql.NullInt64
	err := row.Scan(&g.ID, &g.FamilyID, &g.Name, &g.IsChild, &country, &notes, &tableID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	g.Country = country.String
	g.Notes = notes.String
	if tableID.Valid {
		id := uint64(tableID.Int64)
		g.TableID = &id
	}
	return &g, nil
}

// SetTableTx updates a guest's table reference within a transaction.  A
// nil tableID unassigns the guest.
func (r *GuestRepo) SetTableTx(ctx context.Context, tx *sql.Tx, guestID uint64, tableID *uint64) error {
	const q = `UPDATE guests SET table_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	var arg interface{}
	if tableID != nil {
		arg = *tableID
	}
	res, err := tx.ExecContext(ctx, q, arg, guestID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// The row may simply be unchanged (same table twice); confirm the
		// guest exists before reporting it missing.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM guests WHERE id = ?`, guestID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGuestNotFound
			}
			return err
		}
	}
	return nil
}

// ListByFamily retrieves all guests of a family ordered by name.
func (r *GuestRepo) ListByFamily(ctx context.Context, familyID uint64) ([]model.Guest, error) {
	const q = `SELECT id, family_id, name, is_child, country, notes, table_id, created_at, updated_at
	           FROM guests WHERE family_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Guest
	for rows.Next() {
		var g model.Guest
		var country, notes sql.NullString
		var tableID sql.NullInt64
		if err := rows.Scan(&g.ID, &g.FamilyID, &g.Name, &g.IsChild, &country, &notes, &tableID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Country = country.String
		g.Notes = notes.String
		if tableID.Valid {
			id := uint64(tableID.Int64)
			g.TableID = &id
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AssignmentQuery defines filter & pagination for the assignment view.
type AssignmentQuery struct {
	Filter   string
	Page     int
	PageSize int
}

// SearchAssignments returns one page of guests joined with their family and
// current table, optionally filtered by guest or family name, plus the
// total row count for pagination.
func (r *GuestRepo) SearchAssignments(ctx context.Context, q AssignmentQuery) ([]model.GuestAssignment, int64, error) {
	cond := "1=1"
	args := []any{}
	if q.Filter != "" {
		cond = "(LOWER(g.name) LIKE ? OR LOWER(f.family_name) LIKE ?)"
		like := "%" + strings.ToLower(q.Filter) + "%"
		args = append(args, like, like)
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM guests g
		JOIN families f ON f.id = g.family_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			g.id,
			g.name,
			g.is_child,
			f.family_name,
			COALESCE(g.country, '') AS country,
			COALESCE(g.notes, '')   AS notes,
			g.table_id,
			t.table_name
		FROM guests g
		JOIN families f ON f.id = g.family_id
		LEFT JOIN seating_tables t ON t.id = g.table_id
		WHERE ` + cond + `
		ORDER BY f.family_name, g.name
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]model.GuestAssignment, 0, limit)
	for rows.Next() {
		var ga model.GuestAssignment
		var tableID sql.NullInt64
		var tableName sql.NullString
		if err := rows.Scan(&ga.ID, &ga.Name, &ga.IsChild, &ga.FamilyName, &ga.Country, &ga.Notes, &tableID, &tableName); err != nil {
			return nil, 0, err
		}
		if tableID.Valid {
			id := uint64(tableID.Int64)
			ga.TableID = &id
		}
		if tableName.Valid {
			name := tableName.String
			ga.TableName = &name
		}
		result = append(result, ga)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// CountByFamily returns how many guests a family has registered.
func (r *GuestRepo) CountByFamily(ctx context.Context, familyID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM guests WHERE family_id = ?`, familyID).Scan(&n)
	return n, err
}
