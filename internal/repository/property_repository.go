package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aslanbekov/rentnest/internal/model"
)

// PropertyRepo provides access to the `properties` table. Listing rows are
// hard-deleted; dependent wishlist items and contact messages go with them
// through ON DELETE CASCADE foreign keys.
type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

// propertyColumns selects listing columns plus the owner's username so
// responses can show a display name without a second query.
const propertyColumns = `p.id, p.name, p.description, p.price, p.owner_id, u.username,
	p.features, p.property_type, p.category, p.contact_number, p.contact_email,
	p.bedrooms, p.bathrooms, p.parking_spaces, p.is_active, p.created_at, p.updated_at`

const propertyFrom = " FROM properties p JOIN users u ON u.id = p.owner_id"

// Create inserts a listing and returns its ID. The owner is whatever the
// handler bound server-side; client-supplied owner fields never reach here.
func (r *PropertyRepo) Create(ctx context.Context, p model.Property) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO properties
		 (name, description, price, owner_id, features, property_type, category,
		  contact_number, contact_email, bedrooms, bathrooms, parking_spaces)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.Price, p.OwnerID, p.Features, p.PropertyType,
		p.Category, p.ContactNumber, p.ContactEmail, p.Bedrooms, p.Bathrooms,
		p.ParkingSpaces)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single listing regardless of its active flag; callers
// that only care about active listings must check IsActive themselves.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (model.Property, error) {
	var p model.Property
	err := scanProperty(r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+propertyFrom+" WHERE p.id=? LIMIT 1", id), &p)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// PropertyUpdate carries the optional fields of a partial listing update.
// Nil pointers leave the corresponding column untouched.
type PropertyUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	Features      *string
	PropertyType  *string
	Category      *string
	ContactNumber *string
	ContactEmail  *string
	Bedrooms      *uint32
	Bathrooms     *uint32
	ParkingSpaces *bool
	IsActive      *bool
}

// Update applies the supplied fields and recomputes updated_at. A zero
// affected count after a successful statement means the row is gone, not
// that nothing changed, because updated_at always changes.
func (r *PropertyRepo) Update(ctx context.Context, id uint64, upd PropertyUpdate) error {
	sets := []string{"updated_at=NOW()"}
	args := make([]interface{}, 0, 13)
	add := func(col string, v interface{}, set bool) {
		if set {
			sets = append(sets, col+"=?")
			args = append(args, v)
		}
	}
	add("name", deref(upd.Name), upd.Name != nil)
	add("description", deref(upd.Description), upd.Description != nil)
	if upd.Price != nil {
		add("price", *upd.Price, true)
	}
	add("features", deref(upd.Features), upd.Features != nil)
	add("property_type", deref(upd.PropertyType), upd.PropertyType != nil)
	add("category", deref(upd.Category), upd.Category != nil)
	add("contact_number", deref(upd.ContactNumber), upd.ContactNumber != nil)
	add("contact_email", deref(upd.ContactEmail), upd.ContactEmail != nil)
	if upd.Bedrooms != nil {
		add("bedrooms", *upd.Bedrooms, true)
	}
	if upd.Bathrooms != nil {
		add("bathrooms", *upd.Bathrooms, true)
	}
	if upd.ParkingSpaces != nil {
		add("parking_spaces", *upd.ParkingSpaces, true)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive, true)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE properties SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-removes a listing. Wishlist items and contact messages that
// reference it cascade away in the same statement.
func (r *PropertyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM properties WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PropertyFilter narrows List results. Nil pointers mean "no constraint".
// Order accepts "price", "-price", "created_at" and "-created_at";
// anything else falls back to newest-first.
type PropertyFilter struct {
	ID           *uint64
	Category     *string
	PropertyType *string
	Bedrooms     *uint32
	Bathrooms    *uint32
	Parking      *bool
	MinPrice     *float64
	MaxPrice     *float64
	Query        string // free-text match over name and description
	Order        string
}

// List returns active listings matching the filter.
func (r *PropertyRepo) List(ctx context.Context, f PropertyFilter) ([]model.Property, error) {
	where := []string{"p.is_active=1"}
	args := make([]interface{}, 0, 9)
	if f.ID != nil {
		where = append(where, "p.id=?")
		args = append(args, *f.ID)
	}
	if f.Category != nil {
		where = append(where, "p.category=?")
		args = append(args, *f.Category)
	}
	if f.PropertyType != nil {
		where = append(where, "p.property_type=?")
		args = append(args, *f.PropertyType)
	}
	if f.Bedrooms != nil {
		where = append(where, "p.bedrooms=?")
		args = append(args, *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		where = append(where, "p.bathrooms=?")
		args = append(args, *f.Bathrooms)
	}
	if f.Parking != nil {
		where = append(where, "p.parking_spaces=?")
		args = append(args, *f.Parking)
	}
	if f.MinPrice != nil {
		where = append(where, "p.price>=?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price<=?")
		args = append(args, *f.MaxPrice)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "(p.name LIKE ? OR p.description LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	order := "p.created_at DESC"
	switch f.Order {
	case "price":
		order = "p.price ASC"
	case "-price":
		order = "p.price DESC"
	case "created_at":
		order = "p.created_at ASC"
	case "-created_at":
		order = "p.created_at DESC"
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+propertyColumns+propertyFrom+
			" WHERE "+strings.Join(where, " AND ")+
			" ORDER BY "+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		var p model.Property
		if err := scanProperty(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...interface{}) error }

func scanProperty(row rowScanner, p *model.Property) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID,
		&p.OwnerName, &p.Features, &p.PropertyType, &p.Category,
		&p.ContactNumber, &p.ContactEmail, &p.Bedrooms, &p.Bathrooms,
		&p.ParkingSpaces, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
