package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// fal.ai provider
	FalAPIKey      string
	FalBaseURL     string
	FalTryOnModel  string
	RequestTimeout time.Duration

	// Supabase
	SupabaseURL           string
	SupabaseAnonKey       string
	SupabaseJWTSecret     string
	SupabaseStorageBucket string

	// Credits
	StartingCredits         int
	CreditsPerPurchase      int
	RefundOnUpstreamFailure bool

	// Stripe
	StripeWebhookSecret string

	// Redis (optional, enables rate limiting)
	RedisURL           string
	RateLimitPerMinute int

	// Database
	DatabaseURL string

	// Session gate
	AuthCookieName string

	// Server
	Port        string
	Environment string
	BaseURL     string
	LogLevel    string
}

func Load() (*Config, error) {
	// .env is optional; deployments set real environment variables
	_ = godotenv.Load()

	cfg := &Config{
		FalAPIKey:      getEnv("FAL_KEY", ""),
		FalBaseURL:     getEnv("FAL_BASE_URL", "https://fal.run"),
		FalTryOnModel:  getEnv("FAL_TRYON_MODEL", "fal-ai/kling/v1-5/kolors-virtual-try-on"),
		RequestTimeout: time.Second * time.Duration(getInt("HTTP_TIMEOUT_SECONDS", 60)),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:       getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret:     getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", ""),

		StartingCredits:         getInt("STARTING_CREDITS", 5),
		CreditsPerPurchase:      getInt("CREDITS_PER_PURCHASE", 50),
		RefundOnUpstreamFailure: getBool("REFUND_ON_UPSTREAM_FAILURE", false),

		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 10),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AuthCookieName: getEnv("AUTH_COOKIE_NAME", "sb-access-token"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FalAPIKey == "" {
		return fmt.Errorf("FAL_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseAnonKey == "" {
		return fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.StartingCredits < 0 {
		return fmt.Errorf("STARTING_CREDITS must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
