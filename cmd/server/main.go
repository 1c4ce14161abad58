package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/stayplan/stayplan-server/internal/config"     // Internal config loader
	"github.com/stayplan/stayplan-server/internal/database"   // MySQL connection helper
	"github.com/stayplan/stayplan-server/internal/handler"    // HTTP handlers
	"github.com/stayplan/stayplan-server/internal/middleware" // Rate limit / cache middleware
	"github.com/stayplan/stayplan-server/internal/queue"      // Reservation event consumer
	"github.com/stayplan/stayplan-server/internal/repository" // Data access layer
	"github.com/stayplan/stayplan-server/internal/router"     // Route registration
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the listing response cache. A nil
	// client disables both; the API keeps working without Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	listings := repository.NewListingRepo(db)
	reservations := repository.NewReservationRepo(db)
	notices := repository.NewNoticeRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users)
	listingH := handler.NewListingHandler(listings)
	noticeH := handler.NewNoticeHandler(notices)
	reservationH := handler.NewReservationHandler(listings, reservations)
	profileH := handler.NewProfileHandler(cfg, users)
	sellerH := handler.NewSellerHandler(listings)
	adminH := handler.NewAdminHandler(users, listings, reservations, notices)

	e := echo.New()

	// Token bucket in front of everything; per-route response cache only on
	// the public catalogue group.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, listingH, noticeH, cacheMW)
	router.RegisterCustomer(e, reservationH, profileH, cfg.JWTSecret)
	router.RegisterSeller(e, sellerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Profile uploads are written to cfg.UploadDir and served from here.
	e.Static("/uploads", cfg.UploadDir)

	// Background consumer turns reservation.paid events into log lines.
	// It runs its own reconnect loop and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
