package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/guide"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/planner"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	messagePlanned  = "Itinerary planned successfully"
	messageFallback = "A basic itinerary was generated because detailed planning was not possible"
)

var _ Service = (*ServiceImpl)(nil)

// Service plans itineraries and exposes the external data behind them.
type Service interface {
	Plan(ctx context.Context, prefs types.UserPreferences, mode string, opts types.PlanOptions) (*types.PlanResponse, error)
	Weather(ctx context.Context, destination string, dates []string) ([]types.DailyWeather, error)
	Places(ctx context.Context, destination string, interests []string, limit int) ([]types.Candidate, error)
	LocalInfo(ctx context.Context, destination, lang string) (*types.DestinationInfo, error)
}

type ServiceImpl struct {
	strategies map[string]Strategy
	fallback   Strategy
	deps       Collaborators
	guide      *guide.Guide
	locale     string
	logger     *slog.Logger
	now        func() time.Time
}

// NewServiceImpl registers the strategies by name. The heuristic strategy
// is also the fallback for every other strategy. defaultLocale applies to
// preferences without a locale.
func NewServiceImpl(heuristic Strategy, agent Strategy, deps Collaborators, g *guide.Guide, defaultLocale string, logger *slog.Logger) *ServiceImpl {
	if g == nil {
		g = guide.New()
	}
	s := &ServiceImpl{
		strategies: map[string]Strategy{heuristic.Name(): heuristic},
		fallback:   heuristic,
		deps:       deps,
		guide:      g,
		locale:     defaultLocale,
		logger:     logger,
		now:        time.Now,
	}
	if agent != nil {
		s.strategies[agent.Name()] = agent
	}
	return s
}

// Plan validates prefs and runs the requested strategy. An agent failure
// is answered by the heuristic strategy and reported through the mode. Only
// validation errors, an unknown mode and an unknown destination are returned
// as errors.
func (s *ServiceImpl) Plan(ctx context.Context, prefs types.UserPreferences, mode string, opts types.PlanOptions) (*types.PlanResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("destination", prefs.Destination),
	))
	defer span.End()
	l := s.logger.With(slog.String("mode", mode), slog.String("destination", prefs.Destination))
	started := s.now()

	prefs = prefs.WithDefaults(s.locale)
	if err := prefs.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid preferences")
		return nil, err
	}
	if mode == "" {
		mode = s.fallback.Name()
	}
	strategy, ok := s.strategies[mode]
	if !ok {
		span.SetStatus(codes.Error, "unknown mode")
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownMode, mode)
	}

	it, err := run(ctx, strategy, prefs, opts)
	if err != nil && strategy != s.fallback && !errors.Is(err, types.ErrDestinationNotFound) {
		l.WarnContext(ctx, "Strategy failed, falling back", slog.String("strategy", strategy.Name()), slog.Any("error", err))
		metrics.Get().StrategyFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", strategy.Name())))
		mode = ModeFallback
		it, err = run(ctx, s.fallback, prefs, opts)
	}

	message := messagePlanned
	switch {
	case errors.Is(err, types.ErrDestinationNotFound):
		span.RecordError(err)
		span.SetStatus(codes.Error, "destination not found")
		s.record(ctx, mode, "not_found", started)
		return nil, err
	case err != nil || it == nil || len(it.Days) == 0:
		l.ErrorContext(ctx, "Planning failed, returning fallback itinerary", slog.Any("error", err))
		it = s.FallbackItinerary(prefs)
		message = messageFallback
	}

	s.record(ctx, mode, "success", started)
	span.SetStatus(codes.Ok, "planned")
	l.InfoContext(ctx, "Plan completed", slog.String("final_mode", mode), slog.Int("days", len(it.Days)))
	return &types.PlanResponse{
		Itinerary:      it,
		Success:        true,
		Message:        message,
		Mode:           mode,
		ProcessingTime: math.Round(s.now().Sub(started).Seconds()*1000) / 1000,
	}, nil
}

// run converts a strategy panic into an error.
func run(ctx context.Context, s Strategy, prefs types.UserPreferences, opts types.PlanOptions) (it *types.Itinerary, err error) {
	defer func() {
		if r := recover(); r != nil {
			it, err = nil, fmt.Errorf("%w: %s panicked: %v", types.ErrStrategyFailed, s.Name(), r)
		}
	}()
	return s.Plan(ctx, prefs, opts)
}

func (s *ServiceImpl) record(ctx context.Context, mode, outcome string, started time.Time) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("mode", mode), attribute.String("outcome", outcome))
	m.PlansTotal.Add(ctx, 1, attrs)
	m.PlanDurationSeconds.Record(ctx, s.now().Sub(started).Seconds(), attrs)
}

// FallbackItinerary is the last resort plan: one generic activity per day.
func (s *ServiceImpl) FallbackItinerary(prefs types.UserPreferences) *types.Itinerary {
	return &types.Itinerary{
		Summary:   Summary(prefs, nil),
		Days:      planner.FallbackDays(prefs, nil),
		Tips:      s.guide.Tips(prefs.Locale, prefs.Destination),
		CreatedAt: s.now(),
	}
}

// Weather returns the forecast for dates, or demo weather when it cannot be
// fetched.
func (s *ServiceImpl) Weather(ctx context.Context, destination string, dates []string) ([]types.DailyWeather, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Weather")
	defer span.End()
	l := s.logger.With(slog.String("destination", destination))

	coords, err := coordinates(ctx, s.deps.Geocoder, destination, l)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return forecast(ctx, s.deps.Weather, coords, dates, l), nil
}

// Places returns raw candidates, or the static set when the provider fails.
func (s *ServiceImpl) Places(ctx context.Context, destination string, interests []string, limit int) ([]types.Candidate, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Places")
	defer span.End()
	l := s.logger.With(slog.String("destination", destination))

	coords, err := coordinates(ctx, s.deps.Geocoder, destination, l)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if limit <= 0 || limit > MaxCandidates {
		limit = MaxCandidates
	}

	var found []types.Candidate
	if s.deps.Places != nil {
		found, err = s.deps.Places.Search(ctx, destination, coords, interests, limit)
	}
	if s.deps.Places == nil || err != nil {
		l.WarnContext(ctx, "Places unavailable, using static places", slog.Any("error", err))
		recordProviderFallback(ctx, providers.ProviderPlaces)
		found = providers.StaticPlaces(destination, coords, interests)
	}
	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

// LocalInfo returns the encyclopedia summary, or a placeholder naming the
// destination when none is available.
func (s *ServiceImpl) LocalInfo(ctx context.Context, destination, lang string) (*types.DestinationInfo, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "LocalInfo")
	defer span.End()
	l := s.logger.With(slog.String("destination", destination))

	if info := localInfo(ctx, s.deps.Wiki, destination, lang, l); info != nil {
		return info, nil
	}
	return &types.DestinationInfo{
		Title:    destination,
		Summary:  fmt.Sprintf("No summary is currently available for %s.", destination),
		Language: guide.Language(lang),
	}, nil
}
