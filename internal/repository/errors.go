// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver error strings themselves.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist, or exists
// but is not visible to the caller. Ownership-scoped queries fold both
// cases into this one error so handlers never leak whether another user's
// resource exists. Translates to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own and are not privileged to touch. Translates to
// HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting state. Translates to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists and ErrUsernameExists signal uniqueness violations on
// user creation or profile update. The constraint is enforced by the
// database's unique index; the repository only maps the duplicate-key
// error to the offending column.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// ErrAlreadySaved is returned when a user tries to wishlist a property a
// second time. The (user_id, property_id) unique index rejects the insert
// atomically; there is no check-then-insert window.
var ErrAlreadySaved = errors.New("item already in wishlist")
