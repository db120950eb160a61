package main // Entry point package

import (
	"log"  // Logging library
	"time" // Cache TTL

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/aslanbekov/rentnest/internal/cache"      // Per-user profile cache
	"github.com/aslanbekov/rentnest/internal/config"     // Internal config loader
	"github.com/aslanbekov/rentnest/internal/database"   // MySQL connection pool
	"github.com/aslanbekov/rentnest/internal/handler"    // HTTP handlers
	"github.com/aslanbekov/rentnest/internal/mailer"     // Inquiry notification mailer
	"github.com/aslanbekov/rentnest/internal/queue"      // Broker consumer
	"github.com/aslanbekov/rentnest/internal/repository" // DB repositories
	"github.com/aslanbekov/rentnest/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	rl := config.LoadRateLimitConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient(cfg) // nil when Redis is unreachable
	if rdb == nil {
		log.Printf("redis unavailable at %s; user cache and rate limiting disabled", cfg.RedisAddr)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	props := repository.NewPropertyRepo(db)
	wishlist := repository.NewWishlistRepo(db)
	contacts := repository.NewContactRepo(db)

	userCache := cache.New(rdb, 5*time.Minute)
	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)

	auth := handler.NewAuthHandler(cfg, users, tokens, userCache)

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:      cfg,
		RL:       rl,
		Redis:    rdb,
		Auth:     auth,
		Admin:    handler.NewAdminHandler(auth),
		Property: handler.NewPropertyHandler(props),
		Wishlist: handler.NewWishlistHandler(wishlist, props),
		Contact:  handler.NewContactHandler(contacts, props, smtp),
	})

	// Background consumer mirrors inquiry events into logs/inquiries.log.
	go func() {
		if err := queue.StartInquiryConsumer(); err != nil {
			log.Printf("inquiry consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
