package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/repository"
	"github.com/aslanbekov/rentnest/internal/utils"
)

// AdminHandler serves the privileged sub-API. It reuses the AuthHandler's
// dependencies and flows, tightening them with the staff capability.
type AdminHandler struct {
	Auth *AuthHandler
}

func NewAdminHandler(a *AuthHandler) *AdminHandler { return &AdminHandler{Auth: a} }

// Register creates a staff account. The route sits behind JWTAuth +
// RequireStaff, so only an existing admin can mint another; the first
// admin is seeded by the schema migration. The phone number is optional
// on this surface, matching the admin registration form.
func (h *AdminHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if msg := validateRegister(&req, h.Auth.Cfg.PasswordMinLen, false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	created, code, msg := h.Auth.registerUser(ctx, req, true)
	if code != 0 {
		if code == http.StatusInternalServerError {
			c.Logger().Errorf("admin register: %s", msg)
		}
		return c.JSON(code, echo.Map{"detail": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":    renderUser(created),
		"message": "Admin registered successfully",
	})
}

// Login authenticates an admin. Valid credentials without the staff flag
// are rejected with 403.
func (h *AdminHandler) Login(c echo.Context) error { return h.Auth.login(c, true) }

// Logout revokes the supplied refresh token, exactly as the user surface.
func (h *AdminHandler) Logout(c echo.Context) error { return h.Auth.Logout(c) }

// Refresh exchanges a valid refresh token for a fresh pair. The old token
// is revoked first, so a refresh token is single-use: replaying it after
// rotation (or after logout) fails.
func (h *AdminHandler) Refresh(c echo.Context) error {
	var req logoutReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "refresh token is required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.Refresh))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	userID, err := h.Auth.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid refresh token"})
		}
		c.Logger().Errorf("token refresh: validate: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	if err := h.Auth.Tokens.RevokeByHash(ctx, hash); err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.Logger().Errorf("token refresh: revoke: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}

	u, err := h.Auth.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid refresh token"})
		}
		c.Logger().Errorf("token refresh: load user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "user account is disabled"})
	}

	resp, err := issueTokenPair(ctx, h.Auth.Cfg, h.Auth.Tokens, u)
	if err != nil {
		c.Logger().Errorf("token refresh: issue: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats returns aggregate user counts along with every profile.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	total, admins, err := h.Auth.Users.Stats(ctx)
	if err != nil {
		c.Logger().Errorf("admin stats: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	users, err := h.Auth.Users.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("admin stats: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_users":  total,
		"total_admins": admins,
		"users":        out,
	})
}

// Ban soft-deactivates an account. Repeating the ban is a no-op; the
// account record itself is never deleted.
func (h *AdminHandler) Ban(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Auth.Users.Ban(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "user not found"})
		}
		c.Logger().Errorf("ban: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	h.Auth.Cache.Invalidate(ctx, id)

	return c.JSON(http.StatusOK, echo.Map{
		"id":        u.ID,
		"is_active": u.IsActive,
		"detail":    "User banned successfully",
	})
}
