package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/attractions"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/critic"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/crew"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/guide"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/planner"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ModeGraph    = "graph"
	ModeCrew     = "crew"
	ModeFallback = "graph (fallback)"

	// MaxCandidates bounds a place provider lookup.
	MaxCandidates = 20
)

// Strategy produces an itinerary for validated preferences.
type Strategy interface {
	Name() string
	Plan(ctx context.Context, prefs types.UserPreferences, opts types.PlanOptions) (*types.Itinerary, error)
}

// Collaborators are the external data sources shared by both strategies.
// Any of them may be nil.
type Collaborators struct {
	Geocoder providers.Geocoder
	Weather  providers.WeatherProvider
	Places   providers.PlaceProvider
	Wiki     providers.WikiProvider
}

func recordProviderFallback(ctx context.Context, provider string) {
	metrics.Get().ProviderFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

// coordinates returns nil when the destination could not be located for a
// reason other than it not existing.
func coordinates(ctx context.Context, g providers.Geocoder, destination string, l *slog.Logger) (*types.Coordinates, error) {
	if g == nil {
		return nil, nil
	}
	coords, err := g.Geocode(ctx, destination)
	switch {
	case err == nil:
		return &coords, nil
	case errors.Is(err, types.ErrNotFound):
		return nil, fmt.Errorf("%w: %q", types.ErrDestinationNotFound, destination)
	default:
		l.WarnContext(ctx, "Geocoder unavailable, planning without coordinates", slog.Any("error", err))
		recordProviderFallback(ctx, providers.ProviderGeocoder)
		return nil, nil
	}
}

func forecast(ctx context.Context, w providers.WeatherProvider, coords *types.Coordinates, dates []string, l *slog.Logger) []types.DailyWeather {
	if w == nil || coords == nil {
		recordProviderFallback(ctx, providers.ProviderWeather)
		return providers.DemoWeather(dates)
	}
	days, err := w.Daily(ctx, *coords, dates)
	if err != nil || len(days) == 0 {
		l.WarnContext(ctx, "Weather unavailable, using demo forecast", slog.Any("error", err))
		recordProviderFallback(ctx, providers.ProviderWeather)
		return providers.DemoWeather(dates)
	}
	return days
}

// candidates falls back to static places only when the provider fails. An
// empty successful answer is kept as is.
func candidates(ctx context.Context, p providers.PlaceProvider, prefs types.UserPreferences, coords *types.Coordinates, l *slog.Logger) []types.Candidate {
	if p == nil {
		recordProviderFallback(ctx, providers.ProviderPlaces)
		return providers.StaticPlaces(prefs.Destination, coords, prefs.Interests)
	}
	found, err := p.Search(ctx, prefs.Destination, coords, prefs.Interests, MaxCandidates)
	if err != nil {
		l.WarnContext(ctx, "Places unavailable, using static places", slog.Any("error", err))
		recordProviderFallback(ctx, providers.ProviderPlaces)
		return providers.StaticPlaces(prefs.Destination, coords, prefs.Interests)
	}
	return found
}

func localInfo(ctx context.Context, w providers.WikiProvider, destination, locale string, l *slog.Logger) *types.DestinationInfo {
	if w == nil {
		return nil
	}
	info, err := w.Summary(ctx, destination, guide.Language(locale))
	if err != nil {
		l.WarnContext(ctx, "Local info unavailable", slog.Any("error", err))
		recordProviderFallback(ctx, providers.ProviderWiki)
		return nil
	}
	return &info
}

// Summary is the one-line description of a plan, followed by the validator
// issues when there are any.
func Summary(prefs types.UserPreferences, issues []string) string {
	interests := "general"
	if len(prefs.Interests) > 0 {
		interests = strings.Join(prefs.Interests, ", ")
	}
	s := fmt.Sprintf("%s %s~%s, interests: %s", prefs.Destination, prefs.StartDate, prefs.EndDate, interests)
	if len(issues) > 0 {
		s += "\nNotes: " + strings.Join(issues, "; ")
	}
	return s
}

// assemble runs the validator and critic over days and builds the result.
func assemble(prefs types.UserPreferences, days []types.DayPlan, tips types.Tips, now time.Time) *types.Itinerary {
	report := critic.Critique(prefs, days)
	return &types.Itinerary{
		Summary:   Summary(prefs, critic.Validate(days)),
		Days:      days,
		Tips:      tips,
		Critique:  &report,
		CreatedAt: now,
	}
}

// Heuristic plans with the selector, planner and critic.
type Heuristic struct {
	deps     Collaborators
	selector *attractions.Selector
	planner  *planner.Planner
	guide    *guide.Guide
	logger   *slog.Logger
	now      func() time.Time
}

var _ Strategy = (*Heuristic)(nil)

func NewHeuristic(deps Collaborators, g *guide.Guide, logger *slog.Logger) *Heuristic {
	if g == nil {
		g = guide.New()
	}
	return &Heuristic{
		deps:     deps,
		selector: attractions.NewSelector(logger),
		planner:  planner.NewPlanner(logger),
		guide:    g,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Heuristic) Name() string { return ModeGraph }

func (h *Heuristic) Plan(ctx context.Context, prefs types.UserPreferences, opts types.PlanOptions) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "Heuristic.Plan")
	defer span.End()
	span.SetAttributes(attribute.String("destination", prefs.Destination))
	l := h.logger.With(slog.String("strategy", ModeGraph), slog.String("destination", prefs.Destination))

	coords, err := coordinates(ctx, h.deps.Geocoder, prefs.Destination, l)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "destination not found")
		return nil, err
	}

	var (
		weather []types.DailyWeather
		found   []types.Candidate
		info    *types.DestinationInfo
	)
	var g errgroup.Group
	g.Go(func() error {
		weather = forecast(ctx, h.deps.Weather, coords, prefs.Dates(), l)
		return nil
	})
	g.Go(func() error {
		found = candidates(ctx, h.deps.Places, prefs, coords, l)
		return nil
	})
	if opts.IncludeLocalInfo {
		g.Go(func() error {
			info = localInfo(ctx, h.deps.Wiki, prefs.Destination, prefs.Locale, l)
			return nil
		})
	}
	_ = g.Wait()

	selected := h.selector.Select(ctx, prefs, found, weather)
	days := h.planner.Plan(ctx, planner.Request{
		Prefs:   prefs,
		Places:  selected,
		Weather: weather,
		Origin:  coords,
	})

	it := assemble(prefs, days, h.guide.Tips(prefs.Locale, prefs.Destination), h.now())
	if opts.IncludeWeather {
		it.WeatherInfo = weather
	}
	it.LocalInfo = info

	l.InfoContext(ctx, "Heuristic plan completed",
		slog.Int("candidates", len(found)),
		slog.Int("selected", len(selected)),
		slog.Int("days", len(days)))
	span.SetStatus(codes.Ok, "planned")
	return it, nil
}

// Agent plans with the LLM crew. Its errors are meant to be answered by the
// heuristic strategy.
type Agent struct {
	crew   *crew.Crew
	deps   Collaborators
	logger *slog.Logger
	now    func() time.Time
}

var _ Strategy = (*Agent)(nil)

func NewAgent(c *crew.Crew, deps Collaborators, logger *slog.Logger) *Agent {
	return &Agent{crew: c, deps: deps, logger: logger, now: time.Now}
}

func (a *Agent) Name() string { return ModeCrew }

func (a *Agent) Plan(ctx context.Context, prefs types.UserPreferences, opts types.PlanOptions) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("Itinerary").Start(ctx, "Agent.Plan")
	defer span.End()
	l := a.logger.With(slog.String("strategy", ModeCrew), slog.String("destination", prefs.Destination))

	if a.crew == nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStrategyFailed, types.ErrNotConfigured)
	}
	res, err := a.crew.Run(ctx, prefs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "crew failed")
		return nil, err
	}

	it := assemble(prefs, res.Days, res.Tips, a.now())
	if opts.IncludeWeather {
		it.WeatherInfo = res.Weather
		if len(it.WeatherInfo) == 0 {
			it.WeatherInfo = forecast(ctx, a.deps.Weather, res.Origin, prefs.Dates(), l)
		}
	}
	if opts.IncludeLocalInfo {
		it.LocalInfo = localInfo(ctx, a.deps.Wiki, prefs.Destination, prefs.Locale, l)
	}
	span.SetStatus(codes.Ok, "planned")
	return it, nil
}
