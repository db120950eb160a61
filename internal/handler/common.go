package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/middleware"
)

// currentUserID returns the authenticated user's id from the request
// context. Routes using it are always behind JWTAuth, so a zero value only
// occurs in misconfigured test setups.
func currentUserID(c echo.Context) uint64 { return middleware.UserID(c) }

// currentIsStaff reports the authenticated user's admin capability.
func currentIsStaff(c echo.Context) bool { return middleware.IsStaff(c) }
