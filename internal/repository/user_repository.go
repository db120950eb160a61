package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aslanbekov/rentnest/internal/model"
	"github.com/aslanbekov/rentnest/internal/utils"
)

// UserRepo provides access to the `users` table. Concurrent updates to the
// same row resolve by the single UPDATE's row-level atomicity; there is no
// version counter, so last writer wins.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,username,password_hash,first_name,last_name,phone_number,is_active,is_staff,is_superuser,date_joined"

// Create inserts a user with a freshly hashed password and returns the new
// ID. Email and username uniqueness is enforced by the database's unique
// indexes; a duplicate-key error is mapped to ErrEmailExists or
// ErrUsernameExists depending on the violated index.
func (r *UserRepo) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, first_name, last_name, phone_number, is_staff, is_superuser) VALUES (?,?,?,?,?,?,?,?)",
		email, u.Username, hash, u.FirstName, u.LastName, u.PhoneNumber, u.IsStaff, u.IsSuperuser)
	if err != nil {
		if dup := mapDuplicateUser(err); dup != nil {
			return 0, dup
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil pointers leave the corresponding column untouched. PasswordHash is
// the already-hashed replacement password.
type ProfileUpdate struct {
	Email        *string
	Username     *string
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	PasswordHash *string
}

// UpdateProfile applies the supplied fields to a user row. It is a no-op
// when every field is nil. Duplicate email/username map to the same
// sentinel errors as Create.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) error {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, *v)
		}
	}
	if upd.Email != nil {
		norm := strings.ToLower(strings.TrimSpace(*upd.Email))
		upd.Email = &norm
	}
	add("email", upd.Email)
	add("username", upd.Username)
	add("first_name", upd.FirstName)
	add("last_name", upd.LastName)
	add("phone_number", upd.PhoneNumber)
	add("password_hash", upd.PasswordHash)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if dup := mapDuplicateUser(err); dup != nil {
			return dup
		}
	}
	return err
}

// Ban deactivates an account. Missing users yield ErrNotFound; banning an
// already banned user succeeds without change, so the operation is
// idempotent from the caller's perspective.
func (r *UserRepo) Ban(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_active=0 WHERE id=?", id); err != nil {
		return model.User{}, err
	}
	u.IsActive = false
	return u, nil
}

// ListAll returns every user ordered by id.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
			&u.FirstName, &u.LastName, &u.PhoneNumber,
			&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Stats returns the total user count and the number of staff accounts.
func (r *UserRepo) Stats(ctx context.Context) (total, admins uint64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_staff),0) FROM users").Scan(&total, &admins)
	return total, admins, err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.DateJoined)
	return u, err
}

// mapDuplicateUser inspects a MySQL duplicate-key error (1062) and returns
// the sentinel for the violated index, or nil when err is something else.
// Matching the index name keeps a duplicate email whose value happens to
// contain "username" from being misreported.
func mapDuplicateUser(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "1062") {
		return nil
	}
	if strings.Contains(msg, "uq_users_username") {
		return ErrUsernameExists
	}
	return ErrEmailExists
}
