package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.MetricsPort)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.AmadeusBaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.MaxBookingRetries)
	assert.Equal(t, 3*time.Second, cfg.ResyncBackoff)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Empty(t, cfg.DefaultProfile.FirstName)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("METRICS_PORT", "9090")
	t.Setenv("MAX_BOOKING_RETRIES", "5")
	t.Setenv("RESYNC_BACKOFF_SECONDS", "0")
	t.Setenv("PROFILE_FIRST_NAME", "ANNA")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 5, cfg.MaxBookingRetries)
	assert.Equal(t, time.Duration(0), cfg.ResyncBackoff)
	assert.Equal(t, "ANNA", cfg.DefaultProfile.FirstName)
}
