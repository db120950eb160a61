package model

import "time"

// ContactMessage records an inbound inquiry about a listing. Messages are
// read-only after creation. PropertyID is nullable so a general inquiry
// survives the deletion of the listing it referenced.
type ContactMessage struct {
	ID         uint64    // contact_messages.id
	PropertyID *uint64   // contact_messages.property_id (nullable)
	Message    string    // contact_messages.message
	CreatedAt  time.Time // contact_messages.created_at

	// Joined contact details of the referenced listing. Both are nil when
	// the listing is gone; a typed absence, not a swallowed fault.
	ContactNumber *string
	ContactEmail  *string
}
