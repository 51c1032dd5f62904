package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wedding-planner/internal/config"
	"github.com/iliyamo/wedding-planner/internal/handler"
	"github.com/iliyamo/wedding-planner/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh_token body or a bearer token; no JWT
	// middleware so a session can be ended even with an expired access token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "PLANNER"))
	auth.GET("/me", a.Me)
}

// RegisterSeating registers the seating management endpoints under /v1.
// All routes require a valid JWT with the ADMIN or PLANNER role.  Read
// endpoints sit behind the Redis response cache when one is configured;
// a short TTL keeps occupancy numbers fresh enough for the planning UI.
func RegisterSeating(e *echo.Echo, t *handler.TableHandler, a *handler.AssignmentHandler, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "PLANNER"),
	)

	reads := []echo.MiddlewareFunc{}
	if rdb != nil && cacheCfg.Enabled {
		reads = append(reads, middleware.NewRedisCache(cacheCfg, rdb))
	}

	// ---- Tables ----
	g.GET("/tables/summary", t.Summary, reads...)
	g.GET("/tables/available", t.Available, reads...)
	g.GET("/tables/stats", t.Stats, reads...)
	g.GET("/tables/:id/guests", t.Guests, reads...)

	// ---- Assignments ----
	g.GET("/families/guests-for-assignment", a.GuestsForAssignment)
	g.PUT("/guests/:id/assign-table", a.AssignTable)
}

// RegisterAdmin registers family and guest administration endpoints under
// /v1.  These mutate invitation data and require the same roles as the
// seating endpoints.
func RegisterAdmin(e *echo.Echo, f *handler.FamilyHandler, gh *handler.GuestHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "PLANNER"),
	)

	// ---- Families ----
	g.GET("/families", f.List)
	g.POST("/families", f.Create)
	g.PUT("/families/:id/mark-sent", f.MarkSent)
	g.GET("/families/:id/guests", f.FamilyGuests)

	// ---- Guests ----
	g.POST("/guests", gh.Create)
	g.PUT("/guests/:id", gh.Update)
}

// RegisterInvitation registers the public invitation endpoints under /api.
// No authentication: the invitation code is the credential.  A token
// bucket rate limit blunts code guessing when Redis is available.
func RegisterInvitation(e *echo.Echo, h *handler.InvitationHandler, rdb *redis.Client, rlCfg config.RateLimitConfig) {
	mws := []echo.MiddlewareFunc{}
	if rdb != nil && rlCfg.Enabled {
		mws = append(mws, middleware.NewTokenBucket(rlCfg, rdb))
	}
	g := e.Group("/api/invitation", mws...)
	g.GET("/:code", h.Show)
	g.POST("/:code/respond", h.Respond)
}
