package repository

import (
	"context"
	"database/sql"

	"github.com/aslanbekov/rentnest/internal/model"
)

// ContactRepo provides access to the `contact_messages` table. Messages
// are append-only; nothing updates them after creation.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// Create inserts an inquiry tied to a listing and returns its ID.
func (r *ContactRepo) Create(ctx context.Context, propertyID uint64, message string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contact_messages (property_id, message) VALUES (?,?)",
		propertyID, message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAll returns every message with the referenced listing's contact
// details joined in, newest first. A deleted or missing listing leaves
// the contact fields null rather than failing the whole read.
func (r *ContactRepo) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.property_id, c.message, c.created_at,
		        p.contact_number, p.contact_email
		 FROM contact_messages c
		 LEFT JOIN properties p ON p.id = c.property_id
		 ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ContactMessage
	for rows.Next() {
		var (
			m          model.ContactMessage
			propertyID sql.NullInt64
			number     sql.NullString
			email      sql.NullString
		)
		if err := rows.Scan(&m.ID, &propertyID, &m.Message, &m.CreatedAt,
			&number, &email); err != nil {
			return nil, err
		}
		if propertyID.Valid {
			v := uint64(propertyID.Int64)
			m.PropertyID = &v
		}
		if number.Valid {
			m.ContactNumber = &number.String
		}
		if email.Valid {
			m.ContactEmail = &email.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
