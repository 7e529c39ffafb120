package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/cache"
	"github.com/cinematix/cinema-ticket-system/internal/config"
	"github.com/cinematix/cinema-ticket-system/internal/database"
	"github.com/cinematix/cinema-ticket-system/internal/handler"
	"github.com/cinematix/cinema-ticket-system/internal/queue"
	"github.com/cinematix/cinema-ticket-system/internal/repository"
	"github.com/cinematix/cinema-ticket-system/internal/router"
)

func main() {
	cfg := config.Load()

	sqlDB, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	db := repository.NewDB(sqlDB)
	manager := booking.NewManager(db)

	// Redis is optional: a nil client turns the seat-map cache and the
	// rate limiter into pass-throughs.
	rdb := config.NewRedisClient()
	seatCache := cache.NewSeatMapCache(rdb, config.SeatMapTTL())
	rateLimit := config.LoadRateLimitConfig()

	authH := handler.NewAuthHandler(&db.Store, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	profileH := handler.NewProfileHandler(manager)
	screeningH := handler.NewScreeningHandler(manager, seatCache)
	bookingH := handler.NewBookingHandler(manager, seatCache)
	adminUserH := handler.NewAdminUserHandler(manager, &db.Store)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, profileH, cfg.JWTSecret)
	router.RegisterPublic(e, screeningH)
	router.RegisterCustomer(e, bookingH, cfg.JWTSecret, rateLimit, rdb)
	router.RegisterAdmin(e, screeningH, adminUserH, cfg.JWTSecret)

	// The consumer maintains its own connection and reconnects with
	// backoff; a broker outage only pauses the booking log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
