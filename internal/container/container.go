package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/go-itinerary-planner/app/db"
	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/config"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/cache"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/crew"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/feedback"
	generativeAI "github.com/FACorreiaa/go-itinerary-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/guide"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/health"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const ServiceName = "itinerary-planner"

// Container holds the application dependencies.
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Pool          *pgxpool.Pool
	Redis         *redis.Client
	Cache         *cache.Manager
	Authenticator *appMiddleware.Authenticator
	RateLimiter   *appMiddleware.RateLimiter

	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.HandlerImpl
	FeedbackHandler  *feedback.HandlerImpl
	HealthHandler    *health.HandlerImpl
}

// NewContainer wires providers, cache tiers, strategies and repositories.
// Missing provider credentials disable the live provider; the service then
// answers with fallback data.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	c.Cache = c.newCache(ctx)
	deps, search := newProviders(cfg, c.Cache, logger)

	var llm generativeAI.Generator
	ai, err := generativeAI.NewAIClient(ctx, generativeAI.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}, logger)
	switch {
	case err == nil:
		llm = ai
		logger.Info("LLM client initialised", slog.String("model", ai.Model()))
	case errors.Is(err, types.ErrNotConfigured):
		logger.Warn("LLM key missing, crew mode will fall back to graph")
	default:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	g := guide.New()
	heuristic := itinerary.NewHeuristic(deps, g, logger)
	agent := itinerary.NewAgent(crew.New(llm, deps.Geocoder, deps.Weather, search, g, logger), deps, logger)
	c.ItineraryService = itinerary.NewServiceImpl(heuristic, agent, deps, g, cfg.Planner.DefaultLocale, logger)
	c.ItineraryHandler = itinerary.NewHandler(c.ItineraryService, logger)

	repo, err := c.newFeedbackRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.FeedbackHandler = feedback.NewHandler(feedback.NewServiceImpl(repo, logger), logger)

	p := cfg.Providers
	c.HealthHandler = health.NewHandler(health.Info{
		Service:     ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Mode,
		APIKeys: health.APIKeys{
			LLM:     cfg.LLM.APIKey != "",
			Weather: p.OpenWeather.APIKey != "",
			Maps:    p.GoogleMaps.APIKey != "",
			Places:  p.Foursquare.APIKey != "",
			Search:  p.Tavily.APIKey != "",
		},
		Features: health.Features{
			CrewMode:     llm != nil,
			LiveWeather:  p.OpenWeather.APIKey != "",
			LivePlaces:   p.Foursquare.APIKey != "",
			WebSearch:    p.Tavily.APIKey != "",
			CacheBackend: c.Cache.Backend(),
		},
	}, logger)

	c.Authenticator = appMiddleware.NewAuthenticator(cfg.Auth.JWTSecret, logger)
	if cfg.RateLimit.Enabled {
		c.RateLimiter = appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	}
	return c, nil
}

// newCache prefers Redis, then the file store, then memory only.
func (c *Container) newCache(ctx context.Context) *cache.Manager {
	cc := c.Config.Cache
	if cc.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cc.Redis.Addr, cc.Redis.Password, cc.Redis.DB)
		if err == nil {
			c.Redis = client
			return cache.NewManager(cache.NewRedisStore(client, ""), cc.MaxMemoryItems, c.Logger)
		}
		c.Logger.Warn("Redis unavailable, using file cache", slog.Any("error", err))
	}
	if cc.Dir != "" {
		fs, err := cache.NewFileStore(cc.Dir, cc.MaxSizeMB, c.Logger)
		if err == nil {
			return cache.NewManager(fs, cc.MaxMemoryItems, c.Logger)
		}
		c.Logger.Warn("File cache unavailable, using memory cache", slog.Any("error", err))
	}
	return cache.NewManager(nil, cc.MaxMemoryItems, c.Logger)
}

func newProviders(cfg *config.Config, m *cache.Manager, logger *slog.Logger) (itinerary.Collaborators, providers.SearchProvider) {
	p := cfg.Providers
	client := &http.Client{}

	deps := itinerary.Collaborators{
		Geocoder: cache.NewCachedGeocoder(
			providers.NewNominatimGeocoder(client, p.Nominatim.BaseURL, p.UserAgent, p.Timeout, logger), m),
		Wiki: cache.NewCachedWiki(
			providers.NewWikipedia(client, p.Wikipedia.BaseURL, p.UserAgent, p.Timeout, logger), m),
	}
	if p.OpenWeather.APIKey != "" {
		deps.Weather = cache.NewCachedWeather(
			providers.NewOpenWeather(client, p.OpenWeather.BaseURL, p.OpenWeather.APIKey, p.Timeout, logger), m)
	}
	if p.Foursquare.APIKey != "" {
		deps.Places = cache.NewCachedPlaces(
			providers.NewFoursquare(client, p.Foursquare.BaseURL, p.Foursquare.APIKey, p.Timeout, logger), m)
	}

	var search providers.SearchProvider
	if p.Tavily.APIKey != "" {
		search = providers.NewTavily(client, p.Tavily.BaseURL, p.Tavily.APIKey, p.Timeout, logger)
	}
	return deps, search
}

func (c *Container) newFeedbackRepository(ctx context.Context) (feedback.Repository, error) {
	if !c.Config.Repositories.Postgres.Enabled {
		c.Logger.Info("Postgres disabled, feedback is kept in memory")
		return feedback.NewMemoryRepository(), nil
	}

	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return nil, err
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Pool = pool
	if !database.WaitForDB(ctx, pool, c.Logger) {
		return nil, errors.New("database not ready")
	}
	return feedback.NewPostgresRepository(pool, c.Logger), nil
}

// Close releases the pool and the Redis client.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis", slog.Any("error", err))
		}
	}
}
