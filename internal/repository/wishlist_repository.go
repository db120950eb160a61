package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aslanbekov/rentnest/internal/model"
)

// WishlistRepo provides access to the `wishlist_items` table. The
// (user_id, property_id) unique index is the only guard against duplicate
// saves; the repository never reads before inserting, so concurrent
// identical requests race on the index and exactly one wins.
type WishlistRepo struct{ DB *sql.DB }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{DB: db} }

const wishlistColumns = `w.id, w.user_id, w.property_id, w.created_at, ` + propertyColumns

const wishlistFrom = ` FROM wishlist_items w
	JOIN properties p ON p.id = w.property_id
	JOIN users u ON u.id = p.owner_id`

// Save inserts a wishlist entry for the user. A duplicate pair yields
// ErrAlreadySaved; the caller is expected to have resolved the property to
// an active listing beforehand.
func (r *WishlistRepo) Save(ctx context.Context, userID, propertyID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO wishlist_items (user_id, property_id) VALUES (?,?)",
		userID, propertyID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrAlreadySaved
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the user's wishlist entries with the joined listing,
// newest first. Other users' entries are unreachable through this query
// regardless of request parameters.
func (r *WishlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WishlistItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+wishlistColumns+wishlistFrom+
			" WHERE w.user_id=? ORDER BY w.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetForUser fetches one entry scoped to its owner. An entry that exists
// but belongs to someone else is reported as ErrNotFound, identical to
// true absence, so existence is never leaked across users.
func (r *WishlistRepo) GetForUser(ctx context.Context, userID, entryID uint64) (model.WishlistItem, error) {
	item, err := scanWishlistItem(r.DB.QueryRowContext(ctx,
		"SELECT "+wishlistColumns+wishlistFrom+
			" WHERE w.id=? AND w.user_id=? LIMIT 1", entryID, userID))
	if err == sql.ErrNoRows {
		return item, ErrNotFound
	}
	return item, err
}

// RemoveForUser deletes an entry scoped to its owner, with the same
// NotFound folding as GetForUser.
func (r *WishlistRepo) RemoveForUser(ctx context.Context, userID, entryID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE id=? AND user_id=?", entryID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWishlistItem(row rowScanner) (model.WishlistItem, error) {
	var (
		item model.WishlistItem
		p    model.Property
	)
	err := row.Scan(&item.ID, &item.UserID, &item.PropertyID, &item.CreatedAt,
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID, &p.OwnerName,
		&p.Features, &p.PropertyType, &p.Category, &p.ContactNumber,
		&p.ContactEmail, &p.Bedrooms, &p.Bathrooms, &p.ParkingSpaces,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return item, err
	}
	item.Property = &p
	return item, nil
}
