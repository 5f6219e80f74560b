package container

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-planner/config"
)

func TestNewContainer_WithoutCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{Mode: "test", Version: "0.1.0"}
	cfg.Cache.Dir = t.TempDir()
	cfg.Cache.MaxSizeMB = 1
	cfg.Planner.DefaultLocale = "en_US"
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 5
	cfg.RateLimit.Burst = 10

	c, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Redis)
	assert.Equal(t, "file", c.Cache.Backend())
	assert.NotNil(t, c.ItineraryHandler)
	assert.NotNil(t, c.FeedbackHandler)
	assert.NotNil(t, c.HealthHandler)
	assert.NotNil(t, c.RateLimiter)
}

func TestNewContainer_MemoryCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewContainer(context.Background(), &config.Config{}, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "memory", c.Cache.Backend())
	assert.Nil(t, c.RateLimiter)
}
