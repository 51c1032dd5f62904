package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/wedding-planner/internal/config"
	"github.com/iliyamo/wedding-planner/internal/database"
	"github.com/iliyamo/wedding-planner/internal/handler"
	"github.com/iliyamo/wedding-planner/internal/queue"
	"github.com/iliyamo/wedding-planner/internal/repository"
	"github.com/iliyamo/wedding-planner/internal/router"
)

func main() {
	// Load .env if present; production sets real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter are skipped.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	tables := repository.NewTableRepo(db)
	guests := repository.NewGuestRepo(db)
	families := repository.NewFamilyRepo(db)
	events := repository.NewEventRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	tableH := handler.NewTableHandler(tables)
	assignH := handler.NewAssignmentHandler(guests, tables, families)
	familyH := handler.NewFamilyHandler(families, guests)
	guestH := handler.NewGuestHandler(guests, families)
	inviteH := handler.NewInvitationHandler(families, guests, events)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterSeating(e, tableH, assignH, cfg.JWTSecret, rdb, config.LoadCacheConfig())
	router.RegisterAdmin(e, familyH, guestH, cfg.JWTSecret)
	router.RegisterInvitation(e, inviteH, rdb, config.LoadRateLimitConfig())

	// Background consumer appends assignment changes to the audit log.
	go func() {
		if err := queue.StartAssignmentConsumer(); err != nil {
			log.Printf("assignment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
