package model

import "time"

// WishlistItem links a user to a property they saved for later. The pair
// (UserID, PropertyID) is unique at the schema level, so a user can save
// a given listing at most once even under concurrent identical requests.
// Rows cascade away when either the user or the property is deleted.
type WishlistItem struct {
	ID         uint64    // wishlist_items.id
	UserID     uint64    // wishlist_items.user_id
	PropertyID uint64    // wishlist_items.property_id
	CreatedAt  time.Time // wishlist_items.created_at

	// Property is the joined listing for detail and list responses. It is
	// populated by the repository; nil means the join was not requested.
	Property *Property
}
