package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/repository"
)

// WishlistHandler serves the saved-listings endpoints. Every operation is
// scoped to the authenticated user; entries of other users are
// indistinguishable from nonexistent ones.
type WishlistHandler struct {
	Wishlist *repository.WishlistRepo
	Props    *repository.PropertyRepo
}

func NewWishlistHandler(w *repository.WishlistRepo, p *repository.PropertyRepo) *WishlistHandler {
	return &WishlistHandler{Wishlist: w, Props: p}
}

type saveReq struct {
	PropertyID uint64 `json:"property_id"`
}

// Save adds a listing to the caller's wishlist. The unique index on
// (user, property) makes the duplicate check atomic; a second identical
// request fails without ever creating a second row.
func (h *WishlistHandler) Save(c echo.Context) error {
	var req saveReq
	if err := c.Bind(&req); err != nil || req.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "property_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Props.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
		}
		c.Logger().Errorf("wishlist save: property lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	// Inactive listings are not saveable; their absence from the public
	// catalog should read the same as deletion.
	if !p.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
	}

	uid := currentUserID(c)
	id, err := h.Wishlist.Save(ctx, uid, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadySaved) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "item already in wishlist"})
		}
		c.Logger().Errorf("wishlist save: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}

	item, err := h.Wishlist.GetForUser(ctx, uid, id)
	if err != nil {
		c.Logger().Errorf("wishlist save: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusCreated, renderWishlistItem(item))
}

// List returns the caller's wishlist entries, never another user's.
func (h *WishlistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Wishlist.ListByUser(ctx, currentUserID(c))
	if err != nil {
		c.Logger().Errorf("wishlist list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	out := make([]wishlistResponse, 0, len(items))
	for _, item := range items {
		out = append(out, renderWishlistItem(item))
	}
	return c.JSON(http.StatusOK, out)
}

// Detail returns one of the caller's entries with its listing embedded.
func (h *WishlistHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	item, err := h.Wishlist.GetForUser(ctx, currentUserID(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "item not found in wishlist"})
		}
		c.Logger().Errorf("wishlist detail: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, renderWishlistItem(item))
}

// Remove deletes one of the caller's entries. A foreign or unknown entry
// is a 404 either way, so nothing about other users' wishlists leaks.
func (h *WishlistHandler) Remove(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Wishlist.RemoveForUser(ctx, currentUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "item not found in wishlist"})
		}
		c.Logger().Errorf("wishlist remove: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.NoContent(http.StatusNoContent)
}
