package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator is the text generation capability the agent strategy depends on.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

var _ Generator = (*AIClient)(nil)

// NewAIClient returns ErrNotConfigured when no API key is set.
func NewAIClient(ctx context.Context, cfg Config, logger *slog.Logger) (*AIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", types.ErrNotConfigured)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &AIClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (ai *AIClient) Model() string { return ai.model }

// GenerateContent sends a single prompt. A nil config uses the client's
// default temperature.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent")
	defer span.End()
	span.SetAttributes(attribute.String("model", ai.model), attribute.Int("prompt.length", len(prompt)))

	if config == nil {
		config = &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](ai.temperature)}
	}

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text := result.Text()
	if text == "" {
		span.SetStatus(codes.Error, "empty response")
		return "", ErrEmptyResponse
	}
	span.SetStatus(codes.Ok, "")
	ai.logger.DebugContext(ctx, "Generated content", slog.Int("length", len(text)))
	return text, nil
}
