//go:build integration

package generativeAI

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestMain(m *testing.M) {
	if os.Getenv("GOOGLE_GEMINI_API_KEY") == "" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newIntegrationClient(t *testing.T) *AIClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, err := NewAIClient(context.Background(), Config{
		APIKey:      os.Getenv("GOOGLE_GEMINI_API_KEY"),
		Temperature: 0.2,
	}, logger)
	require.NoError(t, err)
	return client
}

func TestNewAIClient_Integration(t *testing.T) {
	client := newIntegrationClient(t)
	assert.NotNil(t, client.client)
	assert.Equal(t, DefaultModel, client.Model())
}

func TestAIClient_GenerateContent_Integration(t *testing.T) {
	ctx := context.Background()
	client := newIntegrationClient(t)

	t.Run("Generate content with simple prompt", func(t *testing.T) {
		response, err := client.GenerateContent(ctx, "What is the capital of Portugal?", &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.1),
		})
		require.NoError(t, err)
		assert.Contains(t, response, "Lisbon")
	})

	t.Run("Generate attractions as JSON", func(t *testing.T) {
		prompt := `List 3 attractions in Paris as a JSON array of objects with "name", "lat" and "lon".`
		response, err := client.GenerateContent(ctx, prompt, nil)
		require.NoError(t, err)
		lower := strings.ToLower(response)
		assert.True(t,
			strings.Contains(lower, "eiffel") ||
				strings.Contains(lower, "louvre") ||
				strings.Contains(lower, "notre"),
			"Response should mention famous Paris attractions")
	})
}
