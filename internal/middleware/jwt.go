package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id" // uint64 subject of the access token
	CtxStaff  = "staff"   // bool admin capability claim
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and staff claims into the request
// context. The provided secret must match the one used when issuing
// tokens. Expired or malformed tokens are a routine 401, never a server
// fault: the client simply has to re-authenticate.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// The key callback also pins the signing algorithm: a token
			// signed with anything but HMAC is rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid or expired token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid claims"})
			}
			sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid claims"})
			}
			staff, _ := claims["staff"].(bool)

			c.Set(CtxUserID, uint64(sub))
			c.Set(CtxStaff, staff)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by JWTAuth. It returns
// zero when the middleware did not run, which no valid token can produce.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get(CtxUserID).(uint64); ok {
		return v
	}
	return 0
}

// IsStaff reports whether the authenticated user carries the staff
// capability.
func IsStaff(c echo.Context) bool {
	v, _ := c.Get(CtxStaff).(bool)
	return v
}
