package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"virtual-tryon-backend/internal/config"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/database"
	"virtual-tryon-backend/internal/fal"
	"virtual-tryon-backend/internal/handlers"
	"virtual-tryon-backend/internal/middleware"
	"virtual-tryon-backend/internal/services"
	"virtual-tryon-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	falClient := fal.NewClient(cfg.FalBaseURL, cfg.FalAPIKey, cfg.FalTryOnModel, cfg.RequestTimeout, logger)

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	// Result mirroring is optional; without a bucket we relay the
	// provider-hosted URLs directly.
	var resultStore services.ResultStore
	if cfg.SupabaseStorageBucket != "" {
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		resultStore = storageClient
	}

	// Without DATABASE_URL the ledger lives in process memory; fine for
	// local development, useless behind more than one replica.
	var ledger credits.Ledger
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()

		pgLedger, err := credits.NewPostgresLedger(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize credit ledger: %v", err)
		}
		defer pgLedger.Close()
		ledger = pgLedger
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory credit ledger")
		ledger = credits.NewMemoryLedger()
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
	}

	tryOnService := services.NewTryOnService(ledger, falClient, resultStore, cfg.RefundOnUpstreamFailure, logger)

	creditsHandler := handlers.NewCreditsHandler(ledger)
	tryOnHandler := handlers.NewTryOnHandler(tryOnService)
	authHandler := handlers.NewAuthHandler(supabaseClient, ledger, cfg.StartingCredits, logger)
	webhookHandler := handlers.NewWebhookHandler(ledger, cfg.StripeWebhookSecret, cfg.CreditsPerPurchase, logger)

	router := gin.Default()

	// Page-level session redirects; API routes authenticate per request.
	router.Use(middleware.SessionGate(cfg))

	router.GET("/health", handlers.HealthHandler)

	// Auth endpoints take credentials, not tokens
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg, supabaseClient))
	api.GET("/credits", creditsHandler.GetCredits)
	api.POST("/tryon", middleware.RateLimiter(redisClient, cfg.RateLimitPerMinute, logger), tryOnHandler.TryOn)

	// Stripe signs webhook payloads; no bearer auth here
	router.POST("/webhooks/stripe", webhookHandler.HandleStripeWebhook)

	logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
