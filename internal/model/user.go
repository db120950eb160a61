package model

import "time"

// User represents an account record as stored in the `users` table. Each
// field corresponds to a column. Accounts are never hard-deleted: a ban
// only flips IsActive to false so historical listings and wishlist rows
// keep a valid owner.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address, stored lower-cased.
//	Username     – unique display handle, minimum three characters.
//	PasswordHash – bcrypt hashed password; the plaintext is never stored.
//	FirstName    – given name.
//	LastName     – family name.
//	PhoneNumber  – contact phone number.
//	IsActive     – whether the account may log in.
//	IsStaff      – grants access to the admin sub-API.
//	IsSuperuser  – full administrative rights (set together with IsStaff).
//	DateJoined   – timestamp of registration.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	PhoneNumber  string    // users.phone_number
	IsActive     bool      // users.is_active
	IsStaff      bool      // users.is_staff
	IsSuperuser  bool      // users.is_superuser
	DateJoined   time.Time // users.date_joined
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user and carries metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash. Rows with a
// non-null RevokedAt form the durable blacklist consulted before any
// refresh is honored, so a restart cannot resurrect a revoked session.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
