package model

import "time"

// Property mirrors the `properties` table: a rental listing owned by a
// user. The owner is a foreign reference; responses project the owner's
// username as a display name rather than exposing a free-text field.
// Price is a DECIMAL(10,2) column and is always non-negative.
type Property struct {
	ID            uint64    // properties.id
	Name          string    // properties.name
	Description   string    // properties.description
	Price         float64   // properties.price (DECIMAL(10,2))
	OwnerID       uint64    // properties.owner_id (references users.id)
	OwnerName     string    // projected users.username of the owner
	Features      string    // properties.features
	PropertyType  string    // properties.property_type
	Category      string    // properties.category
	ContactNumber string    // properties.contact_number
	ContactEmail  string    // properties.contact_email
	Bedrooms      uint32    // properties.bedrooms
	Bathrooms     uint32    // properties.bathrooms
	ParkingSpaces bool      // properties.parking_spaces
	IsActive      bool      // properties.is_active
	CreatedAt     time.Time // properties.created_at
	UpdatedAt     time.Time // properties.updated_at
}
