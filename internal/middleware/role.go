package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireStaff enforces the is_staff capability on admin endpoints. It
// assumes JWTAuth already ran and stored the staff claim in the context;
// a missing or false claim aborts the request with 403.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsStaff(c) {
				return c.JSON(http.StatusForbidden, echo.Map{"detail": "forbidden"})
			}
			return next(c)
		}
	}
}
