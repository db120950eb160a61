// Package handler exposes the HTTP handlers for the public, authenticated
// and admin surfaces of the API.
package handler

import (
	"github.com/aslanbekov/rentnest/internal/cache"
	"github.com/aslanbekov/rentnest/internal/model"
	"github.com/aslanbekov/rentnest/internal/utils"
)

// userResponse is the public projection of a user. Password material is
// never part of any response body.
type userResponse struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	DateJoined  string `json:"date_joined"`
}

func renderUser(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		DateJoined:  utils.FormatTimestamp(u.DateJoined),
	}
}

// cacheProfile converts a user row into the cacheable projection.
func cacheProfile(u model.User) cache.Profile {
	return cache.Profile{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		DateJoined:  utils.FormatTimestamp(u.DateJoined),
	}
}

func renderCachedUser(p cache.Profile) userResponse {
	return userResponse{
		ID:          p.ID,
		Email:       p.Email,
		Username:    p.Username,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
		IsActive:    p.IsActive,
		IsStaff:     p.IsStaff,
		DateJoined:  p.DateJoined,
	}
}

// propertyResponse renders a listing. Price is always the fixed
// two-decimal currency string and timestamps the fixed human-readable
// format, on every read path.
type propertyResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	Owner         string `json:"owner"`
	OwnerID       uint64 `json:"owner_id"`
	Features      string `json:"features"`
	PropertyType  string `json:"property_type"`
	Category      string `json:"category"`
	ContactNumber string `json:"contact_number"`
	ContactEmail  string `json:"contact_email"`
	Bedrooms      uint32 `json:"bedrooms"`
	Bathrooms     uint32 `json:"bathrooms"`
	ParkingSpaces bool   `json:"parking_spaces"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func renderProperty(p model.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         utils.FormatPrice(p.Price),
		Owner:         p.OwnerName,
		OwnerID:       p.OwnerID,
		Features:      p.Features,
		PropertyType:  p.PropertyType,
		Category:      p.Category,
		ContactNumber: p.ContactNumber,
		ContactEmail:  p.ContactEmail,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		ParkingSpaces: p.ParkingSpaces,
		IsActive:      p.IsActive,
		CreatedAt:     utils.FormatTimestamp(p.CreatedAt),
		UpdatedAt:     utils.FormatTimestamp(p.UpdatedAt),
	}
}

type wishlistResponse struct {
	ID        uint64            `json:"id"`
	Property  *propertyResponse `json:"property"`
	CreatedAt string            `json:"created_at"`
}

func renderWishlistItem(item model.WishlistItem) wishlistResponse {
	out := wishlistResponse{
		ID:        item.ID,
		CreatedAt: utils.FormatTimestamp(item.CreatedAt),
	}
	if item.Property != nil {
		p := renderProperty(*item.Property)
		out.Property = &p
	}
	return out
}

type contactResponse struct {
	ID            uint64  `json:"id"`
	PropertyID    *uint64 `json:"property_id"`
	Message       string  `json:"message"`
	ContactNumber *string `json:"contact_number"`
	ContactEmail  *string `json:"contact_email"`
	CreatedAt     string  `json:"created_at"`
}

func renderContact(m model.ContactMessage) contactResponse {
	return contactResponse{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		Message:       m.Message,
		ContactNumber: m.ContactNumber,
		ContactEmail:  m.ContactEmail,
		CreatedAt:     utils.FormatTimestamp(m.CreatedAt),
	}
}
