package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/model"
	"github.com/aslanbekov/rentnest/internal/repository"
)

// PropertyHandler serves listing CRUD and the public browse endpoints.
// Mutations follow the owner-or-admin policy: the owner is bound to the
// authenticated actor at creation and only that owner or a staff user may
// update or delete the listing afterwards.
type PropertyHandler struct {
	Props *repository.PropertyRepo
}

func NewPropertyHandler(p *repository.PropertyRepo) *PropertyHandler {
	return &PropertyHandler{Props: p}
}

type createPropertyReq struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	Features      string   `json:"features"`
	PropertyType  string   `json:"property_type"`
	Category      string   `json:"category"`
	ContactNumber string   `json:"contact_number"`
	ContactEmail  string   `json:"contact_email"`
	Bedrooms      *uint32  `json:"bedrooms"`
	Bathrooms     *uint32  `json:"bathrooms"`
	ParkingSpaces bool     `json:"parking_spaces"`
}

func (req *createPropertyReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	switch {
	case req.Name == "":
		return "name is required"
	case strings.TrimSpace(req.Description) == "":
		return "description is required"
	case req.Price == nil:
		return "price is required"
	case strings.TrimSpace(req.Features) == "":
		return "features is required"
	case strings.TrimSpace(req.PropertyType) == "":
		return "property_type is required"
	case strings.TrimSpace(req.Category) == "":
		return "category is required"
	case strings.TrimSpace(req.ContactNumber) == "":
		return "contact_number is required"
	case req.ContactEmail == "":
		return "contact_email is required"
	case req.Bedrooms == nil:
		return "bedrooms is required"
	case req.Bathrooms == nil:
		return "bathrooms is required"
	}
	if *req.Price < 0 {
		return "price must be non-negative"
	}
	if !strings.Contains(req.ContactEmail, "@") {
		return "enter a valid contact email address"
	}
	return ""
}

// Create registers a new listing owned by the caller. A client-supplied
// owner field does not exist in the request shape, so ownership cannot be
// forged.
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Props.Create(ctx, model.Property{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		OwnerID:       currentUserID(c),
		Features:      req.Features,
		PropertyType:  req.PropertyType,
		Category:      req.Category,
		ContactNumber: req.ContactNumber,
		ContactEmail:  req.ContactEmail,
		Bedrooms:      *req.Bedrooms,
		Bathrooms:     *req.Bathrooms,
		ParkingSpaces: req.ParkingSpaces,
	})
	if err != nil {
		c.Logger().Errorf("property create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	p, err := h.Props.GetByID(ctx, id)
	if err != nil {
		c.Logger().Errorf("property create: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusCreated, renderProperty(p))
}

type updatePropertyReq struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Features      *string  `json:"features"`
	PropertyType  *string  `json:"property_type"`
	Category      *string  `json:"category"`
	ContactNumber *string  `json:"contact_number"`
	ContactEmail  *string  `json:"contact_email"`
	Bedrooms      *uint32  `json:"bedrooms"`
	Bathrooms     *uint32  `json:"bathrooms"`
	ParkingSpaces *bool    `json:"parking_spaces"`
	IsActive      *bool    `json:"is_active"`
}

// loadOwned resolves a listing and enforces the owner-or-admin rule.
func (h *PropertyHandler) loadOwned(ctx context.Context, c echo.Context) (model.Property, int, string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return model.Property{}, http.StatusBadRequest, "invalid id"
	}
	p, err := h.Props.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Property{}, http.StatusNotFound, "property not found"
		}
		c.Logger().Errorf("property lookup: %v", err)
		return model.Property{}, http.StatusInternalServerError, "something went wrong, please try again"
	}
	if p.OwnerID != currentUserID(c) && !currentIsStaff(c) {
		return model.Property{}, http.StatusForbidden, "you do not have permission to modify this property"
	}
	return p, 0, ""
}

// Update applies a partial update to a listing the caller may modify.
func (h *PropertyHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, code, msg := h.loadOwned(ctx, c)
	if code != 0 {
		return c.JSON(code, echo.Map{"detail": msg})
	}

	var req updatePropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "price must be non-negative"})
	}
	if req.ContactEmail != nil && !strings.Contains(*req.ContactEmail, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "enter a valid contact email address"})
	}

	err := h.Props.Update(ctx, p.ID, repository.PropertyUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Features:      req.Features,
		PropertyType:  req.PropertyType,
		Category:      req.Category,
		ContactNumber: req.ContactNumber,
		ContactEmail:  req.ContactEmail,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		ParkingSpaces: req.ParkingSpaces,
		IsActive:      req.IsActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
		}
		c.Logger().Errorf("property update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	updated, err := h.Props.GetByID(ctx, p.ID)
	if err != nil {
		c.Logger().Errorf("property update: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, renderProperty(updated))
}

// Delete hard-removes a listing; wishlist entries and contact messages
// referencing it cascade away.
func (h *PropertyHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, code, msg := h.loadOwned(ctx, c)
	if code != 0 {
		return c.JSON(code, echo.Map{"detail": msg})
	}
	if err := h.Props.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
		}
		c.Logger().Errorf("property delete: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns active listings, optionally filtered and ordered. All
// filters are conjunctive; the default order is newest first.
func (h *PropertyHandler) List(c echo.Context) error {
	var f repository.PropertyFilter

	if v := c.QueryParam("id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid id"})
		}
		f.ID = &id
	}
	if v := c.QueryParam("category"); v != "" {
		f.Category = &v
	}
	if v := c.QueryParam("property_type"); v != "" {
		f.PropertyType = &v
	}
	if v := c.QueryParam("bedrooms"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid bedrooms"})
		}
		b := uint32(n)
		f.Bedrooms = &b
	}
	if v := c.QueryParam("bathrooms"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid bathrooms"})
		}
		b := uint32(n)
		f.Bathrooms = &b
	}
	if v := c.QueryParam("parking"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid parking"})
		}
		f.Parking = &b
	}
	if v := c.QueryParam("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid min_price"})
		}
		f.MinPrice = &p
	}
	if v := c.QueryParam("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid max_price"})
		}
		f.MaxPrice = &p
	}
	f.Order = c.QueryParam("ordering")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	return h.respondList(ctx, c, f)
}

// Search matches active listings by free text over name and description.
// An empty query returns everything.
func (h *PropertyHandler) Search(c echo.Context) error {
	f := repository.PropertyFilter{Query: c.QueryParam("query")}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	return h.respondList(ctx, c, f)
}

func (h *PropertyHandler) respondList(ctx context.Context, c echo.Context, f repository.PropertyFilter) error {
	props, err := h.Props.List(ctx, f)
	if err != nil {
		c.Logger().Errorf("property list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, renderProperty(p))
	}
	return c.JSON(http.StatusOK, out)
}
