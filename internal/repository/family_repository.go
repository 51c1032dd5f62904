package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// ErrFamilyNotFound is returned when a family lookup yields no rows.
var ErrFamilyNotFound = errors.New("family not found")

// ErrInvitationCodeExists is returned when an insert collides on the unique
// invitation code.  Callers regenerate the code and retry.
var ErrInvitationCodeExists = errors.New("invitation code already exists")

// FamilyRepo provides CRUD operations for families.  A family is the unit
// of invitation: one code, one RSVP answer, many guests.
type FamilyRepo struct {
	db *sql.DB
}

// NewFamilyRepo returns a new FamilyRepo bound to the given database.
func NewFamilyRepo(db *sql.DB) *FamilyRepo { return &FamilyRepo{db: db} }

const familyCols = `id, family_name, contact_person, email, phone, max_guests,
	invitation_code, invitation_sent, sent_date, responded, response_date,
	attending, dietary_restrictions, special_message, created_at, updated_at`

// Create inserts a family record. On success the family's ID is populated.
func (r *FamilyRepo) Create(ctx context.Context, f *model.Family) error {
	const q = `INSERT INTO families
	           (family_name, contact_person, email, phone, max_guests, invitation_code)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.FamilyName, f.ContactPerson, f.Email, f.Phone, f.MaxGuests, f.InvitationCode)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrInvitationCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// List retrieves all families ordered by name.
func (r *FamilyRepo) List(ctx context.Context) ([]model.Family, error) {
	const q = `SELECT ` + familyCols + ` FROM families ORDER BY family_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Family
	for rows.Next() {
		f, err := scanFamily(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a family by its id.
func (r *FamilyRepo) GetByID(ctx context.Context, id uint64) (*model.Family, error) {
	const q = `SELECT ` + familyCols + ` FROM families WHERE id = ?`
	f, err := scanFamily(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFamilyNotFound
		}
		return nil, err
	}
	return f, nil
}

// GetByCode retrieves a family by its invitation code.
func (r *FamilyRepo) GetByCode(ctx context.Context, code string) (*model.Family, error) {
	const q = `SELECT ` + familyCols + ` FROM families WHERE invitation_code = ?`
	f, err := scanFamily(r.db.QueryRowContext(ctx, q, code).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFamilyNotFound
		}
		return nil, err
	}
	return f, nil
}

// MarkSent records that the invitation was delivered.  Returns
// ErrFamilyNotFound when the family does not exist.
func (r *FamilyRepo) MarkSent(ctx context.Context, id uint64) error {
	const q = `UPDATE families
	           SET invitation_sent = 1, sent_date = NOW(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFamilyNotFound
	}
	return nil
}

// Respond records the family's RSVP answer.  Repeated responses overwrite
// the previous answer; the invite page allows changing one's mind until
// the deadline.
func (r *FamilyRepo) Respond(ctx context.Context, id uint64, attending bool) error {
	const q = `UPDATE families
	           SET responded = 1, response_date = NOW(), attending = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, attending, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFamilyNotFound
	}
	return nil
}

// scanFamily maps one row onto a model.Family, unwrapping nullable columns.
func scanFamily(scan func(dest ...any) error) (*model.Family, error) {
	var f model.Family
	var email, dietary, message sql.NullString
	var sentDate, responseDate sql.NullTime
	var attending sql.NullBool
	err := scan(
		&f.ID, &f.FamilyName, &f.ContactPerson, &email, &f.Phone, &f.MaxGuests,
		&f.InvitationCode, &f.InvitationSent, &sentDate, &f.Responded, &responseDate,
		&attending, &dietary, &message, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		v := email.String
		f.Email = &v
	}
	if sentDate.Valid {
		v := sentDate.Time
		f.SentDate = &v
	}
	if responseDate.Valid {
		v := responseDate.Time
		f.ResponseDate = &v
	}
	if attending.Valid {
		v := attending.Bool
		f.Attending = &v
	}
	if dietary.Valid {
		v := dietary.String
		f.DietaryRestrictions = &v
	}
	if message.Valid {
		v := message.String
		f.SpecialMessage = &v
	}
	return &f, nil
}
