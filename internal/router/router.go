// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinematix/cinema-ticket-system/internal/config"
	"github.com/cinematix/cinema-ticket-system/internal/handler"
	"github.com/cinematix/cinema-ticket-system/internal/middleware"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration/login under /v1/auth and the
// authenticated self-service endpoints (profile read and conditional
// edit) under /v1/auth/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/v1/auth/me")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("", a.Me)
	me.PATCH("", p.Update)
}

// RegisterPublic registers the unauthenticated catalog: active
// screenings and per-screening seat maps.  Seat maps are display reads;
// seat ownership is only ever decided by the version-checked writes
// behind the booking endpoints.
func RegisterPublic(e *echo.Echo, s *handler.ScreeningHandler) {
	e.GET("/v1/screenings", s.List)
	e.GET("/v1/screenings/:id/seats", s.SeatMap)
}

// RegisterCustomer registers the booking endpoints.  All of them need a
// valid access token; the write endpoints additionally sit behind the
// fixed-window rate limiter so one client cannot hammer the seat rows.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rl config.RateLimitConfig, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/bookings", b.List)
	auth.GET("/bookings/:id", b.Get)

	limited := auth.Group("")
	limited.Use(middleware.RateLimit(rl, rdb))
	limited.POST("/screenings/:id/bookings", b.Create)
	limited.DELETE("/bookings/:id", b.Cancel)
}

// RegisterAdmin registers catalog management and the admin user surface
// under /v1/admin, gated by the ADMIN role.
func RegisterAdmin(e *echo.Echo, s *handler.ScreeningHandler, u *handler.AdminUserHandler, jwtSecret string) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/movies", s.CreateMovie)
	admin.POST("/screenings", s.CreateScreening)
	admin.DELETE("/screenings/:id", s.Deactivate)

	admin.GET("/users/:id", u.Get)
	admin.PATCH("/users/:id", u.Update)
	admin.DELETE("/users/:id", u.Delete)
}
