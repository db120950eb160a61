// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/aslanbekov/rentnest/internal/config"
	"github.com/aslanbekov/rentnest/internal/handler"
	"github.com/aslanbekov/rentnest/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg      config.Config
	RL       config.RateLimitConfig
	Redis    *redis.Client
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	Property *handler.PropertyHandler
	Wishlist *handler.WishlistHandler
	Contact  *handler.ContactHandler
}

// Register mounts all routes on the Echo instance. Public browse and
// contact submission need no token; everything else sits behind JWTAuth,
// and the admin surface additionally behind RequireStaff.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	jwtAuth := middleware.JWTAuth(d.Cfg.JWTSecret)
	staff := middleware.RequireStaff()
	throttle := middleware.RateLimit(d.RL, d.Redis)

	// User surface. Register and login are throttled; the rest requires a
	// valid access token.
	user := e.Group("/user")
	user.POST("/register", d.Auth.Register, throttle)
	user.POST("/login", d.Auth.Login, throttle)
	user.POST("/logout", d.Auth.Logout)
	user.GET("/profile", d.Auth.Profile, jwtAuth)
	user.PUT("/profile/update", d.Auth.UpdateProfile, jwtAuth)
	user.GET("/list", d.Auth.ListUsers, jwtAuth)

	// Listing surface. Browsing is public; mutations follow the
	// owner-or-admin policy inside the handler.
	prop := e.Group("/property")
	prop.GET("/list", d.Property.List)
	prop.GET("/search", d.Property.Search)
	prop.POST("/create", d.Property.Create, jwtAuth)
	prop.PUT("/update/:id", d.Property.Update, jwtAuth)
	prop.DELETE("/delete/:id", d.Property.Delete, jwtAuth)

	// Wishlist lives under the property prefix.
	prop.GET("/saved", d.Wishlist.List, jwtAuth)
	prop.POST("/saved", d.Wishlist.Save, jwtAuth)
	prop.DELETE("/wishlist/:id", d.Wishlist.Remove, jwtAuth)
	prop.GET("/wishlist/:id/detail", d.Wishlist.Detail, jwtAuth)

	// Inquiries: anyone can submit, only staff can read the inbox.
	prop.POST("/contact", d.Contact.Submit)
	prop.GET("/contact", d.Contact.ListMessages, jwtAuth, staff)

	// Admin surface. Login and token refresh cannot demand a token;
	// everything else requires an authenticated staff caller.
	admin := e.Group("/property_admin")
	admin.POST("/login", d.Admin.Login, throttle)
	admin.POST("/logout", d.Admin.Logout)
	admin.POST("/token/refresh", d.Admin.Refresh)
	admin.POST("/register", d.Admin.Register, jwtAuth, staff)
	admin.GET("/stats", d.Admin.Stats, jwtAuth, staff)
	admin.PUT("/users/:id", d.Admin.Ban, jwtAuth, staff)
}
