package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"virtual-tryon-backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FAL_KEY", "test-fal-key")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://fal.run", cfg.FalBaseURL)
	assert.Equal(t, "fal-ai/kling/v1-5/kolors-virtual-try-on", cfg.FalTryOnModel)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.StartingCredits)
	assert.Equal(t, 50, cfg.CreditsPerPurchase)
	assert.False(t, cfg.RefundOnUpstreamFailure)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, "sb-access-token", cfg.AuthCookieName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("STARTING_CREDITS", "10")
	t.Setenv("REFUND_ON_UPSTREAM_FAILURE", "true")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.StartingCredits)
	assert.True(t, cfg.RefundOnUpstreamFailure)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing FAL_KEY", "FAL_KEY"},
		{"missing SUPABASE_URL", "SUPABASE_URL"},
		{"missing SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.omit, "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.omit)
		})
	}
}

func TestValidate_RejectsNegativeStartingCredits(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STARTING_CREDITS", "-1")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STARTING_CREDITS")
}
