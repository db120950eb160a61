package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/cache"
	"github.com/aslanbekov/rentnest/internal/config"
	"github.com/aslanbekov/rentnest/internal/model"
	"github.com/aslanbekov/rentnest/internal/repository"
	"github.com/aslanbekov/rentnest/internal/utils"
)

// dbTimeout bounds every database round trip a handler makes.
const dbTimeout = 5 * time.Second

// AuthHandler bundles dependencies for the user-facing auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cache  *cache.UserCache
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, uc *cache.UserCache) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Cache: uc}
}

// ----- DTOs -----

type registerReq struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type logoutReq struct {
	Refresh string `json:"refresh"`
}

type loginResp struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    userResponse `json:"user"`
}

// validateRegister applies the fixed validation order: presence first,
// then shape, then the business rules (password policy, confirm match).
// phoneRequired is false on the admin surface, which has no phone field.
func validateRegister(req *registerReq, minPasswordLen int, phoneRequired bool) string {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	switch {
	case req.Email == "":
		return "email is required"
	case req.Username == "":
		return "username is required"
	case req.FirstName == "":
		return "first_name is required"
	case req.LastName == "":
		return "last_name is required"
	case phoneRequired && req.PhoneNumber == "":
		return "phone_number is required"
	case req.Password == "":
		return "password is required"
	case req.ConfirmPassword == "":
		return "confirm_password is required"
	}
	if !strings.Contains(req.Email, "@") {
		return "enter a valid email address"
	}
	if len(req.Username) < 3 {
		return "username must be at least 3 characters long"
	}
	// The mismatch wins over the strength policy: mismatched passwords
	// always report the mismatch, however weak the password is.
	if req.Password != req.ConfirmPassword {
		return "passwords do not match"
	}
	if err := utils.ValidatePassword(req.Password, minPasswordLen); err != nil {
		return err.Error()
	}
	return ""
}

// registerUser runs the shared registration flow and returns the stored
// user. The staff flag distinguishes self-service from admin registration.
func (h *AuthHandler) registerUser(ctx context.Context, req registerReq, staff bool) (model.User, int, string) {
	u := model.User{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		IsStaff:     staff,
		IsSuperuser: staff,
	}
	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) || errors.Is(err, repository.ErrUsernameExists) {
			return model.User{}, http.StatusBadRequest, err.Error()
		}
		return model.User{}, http.StatusInternalServerError, "server error during registration"
	}
	// A stale projection keyed by this id cannot exist for a fresh row,
	// but the write contract is invalidate-on-every-mutation.
	h.Cache.Invalidate(ctx, id)

	created, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, http.StatusInternalServerError, "server error during registration"
	}
	return created, 0, ""
}

// Register creates a self-service account and returns its public profile.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if msg := validateRegister(&req, h.Cfg.PasswordMinLen, true); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	created, code, msg := h.registerUser(ctx, req, false)
	if code != 0 {
		if code == http.StatusInternalServerError {
			c.Logger().Errorf("register: %s", msg)
		}
		return c.JSON(code, echo.Map{"detail": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":    renderUser(created),
		"message": "User registered successfully",
	})
}

// login authenticates credentials and, when requireStaff is set, also
// enforces the admin capability. Wrong email and wrong password share one
// response so account existence is not probeable.
func (h *AuthHandler) login(c echo.Context, requireStaff bool) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": `must include "email" and "password"`})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unable to log in with provided credentials"})
		}
		c.Logger().Errorf("login: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "unable to log in with provided credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "user account is disabled"})
	}
	if requireStaff && !u.IsStaff {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "user is not an admin"})
	}

	resp, err := issueTokenPair(ctx, h.Cfg, h.Tokens, u)
	if err != nil {
		c.Logger().Errorf("login: issue tokens: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Login handles POST /user/login.
func (h *AuthHandler) Login(c echo.Context) error { return h.login(c, false) }

// Logout revokes the refresh token supplied in the body. Revoking an
// unknown or already revoked token still reports success; from the
// caller's side logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.Refresh)))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.Logger().Errorf("logout: revoke failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "successfully logged out"})
}

// Profile returns the caller's public profile, served from the cache when
// warm and recomputed from the database on a miss.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid := currentUserID(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if p, ok := h.Cache.Get(ctx, uid); ok {
		return c.JSON(http.StatusOK, renderCachedUser(p))
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "user not found"})
		}
		c.Logger().Errorf("profile: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	h.Cache.Set(ctx, cacheProfile(u))
	return c.JSON(http.StatusOK, renderUser(u))
}

type profileUpdateReq struct {
	Email           *string `json:"email"`
	Username        *string `json:"username"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	PhoneNumber     *string `json:"phone_number"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirm_password"`
}

// UpdateProfile applies a partial update to the caller's own record. The
// target row is always the authenticated identity; a client-supplied id
// has no path into this handler.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid := currentUserID(c)
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	// Trim before validating so the stored value is the validated one.
	req.Email = trimPtr(req.Email)
	req.Username = trimPtr(req.Username)
	req.FirstName = trimPtr(req.FirstName)
	req.LastName = trimPtr(req.LastName)
	req.PhoneNumber = trimPtr(req.PhoneNumber)
	if req.Username != nil && len(*req.Username) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "username must be at least 3 characters long"})
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "enter a valid email address"})
	}

	upd := repository.ProfileUpdate{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Password != nil {
		if err := utils.ValidatePassword(*req.Password, h.Cfg.PasswordMinLen); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
		}
		if req.ConfirmPassword == nil || *req.Password != *req.ConfirmPassword {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "passwords do not match"})
		}
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			c.Logger().Errorf("profile update: hash failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
		}
		upd.PasswordHash = &hash
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, upd); err != nil {
		if errors.Is(err, repository.ErrEmailExists) || errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
		}
		c.Logger().Errorf("profile update: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	h.Cache.Invalidate(ctx, uid)

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		c.Logger().Errorf("profile update: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, renderUser(u))
}

// ListUsers returns the public profiles of every account.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("user list: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	return c.JSON(http.StatusOK, out)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// issueTokenPair creates and stores a fresh access/refresh pair for a user.
func issueTokenPair(ctx context.Context, cfg config.Config, tokens *repository.TokenRepo, u model.User) (loginResp, error) {
	access, err := utils.NewAccessToken(cfg.JWTSecret, u.ID, u.IsStaff, cfg.AccessTTLMin)
	if err != nil {
		return loginResp{}, err
	}
	refresh, err := utils.NewRefreshToken(cfg.RefreshTTLDays)
	if err != nil {
		return loginResp{}, err
	}
	if err := tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return loginResp{}, err
	}
	return loginResp{
		Access:  access.Token,
		Refresh: refresh.Raw, // raw back to the client, hash stays in the DB
		User:    renderUser(u),
	}, nil
}
