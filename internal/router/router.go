// Package router defines how HTTP routes are registered for the API.
// Every route group carries its middleware chain here, so the privilege
// boundaries of the whole service are visible in one file: identity
// resolution always runs before any role check.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
)

// RegisterRoutes registers routes that need no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers signup/login plus the protected account routes.
// The limiter middleware (Redis token bucket, no-op when Redis is absent)
// shields the credential endpoints from brute forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.Signup, limiter)
	g.POST("/login", a.Login, limiter)

	// change-password and me require a resolved identity but no
	// particular role.
	p := e.Group("/api/auth")
	p.Use(middleware.JWTAuth(jwtSecret))
	p.POST("/change-password", a.ChangePassword)
	p.GET("/me", a.Me)
}

// RegisterAdmin registers the admin area.  Role enforcement runs strictly
// after JWTAuth has resolved the identity.  The cache middleware (Redis,
// no-op when absent) fronts the listings; they carry no per-caller data,
// so a route+query key cannot leak between admins.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/dashboard", a.Dashboard)
	g.POST("/users", a.CreateUser)
	g.GET("/users", a.ListUsers, cache)
	g.GET("/users/:id", a.GetUser)
	g.GET("/stores", a.ListStores, cache)
	g.POST("/stores", a.CreateStore)
}

// RegisterOwner registers the store-owner area.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group("/api/owner")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStoreOwner))

	g.GET("/dashboard", o.Dashboard)
	g.POST("/store", o.CreateStore)
	g.PUT("/store/:id", o.UpdateStore)
	g.DELETE("/store/:id", o.DeleteStore)
}

// RegisterStores registers the endpoints open to every authenticated role.
// The listing is never cached: each response embeds the caller's own
// rating per store.
func RegisterStores(e *echo.Echo, s *handler.StoreHandler, jwtSecret string) {
	g := e.Group("/api/stores")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleNormalUser, model.RoleStoreOwner))

	g.GET("", s.List)
	g.POST("/:storeId/rate", s.Rate)
}
