// Package crew plans an itinerary through a sequence of LLM tasks:
// research, attraction selection, day planning and local guidance.
package crew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	generativeAI "github.com/FACorreiaa/go-itinerary-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/geo"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/guide"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const maxSearchResults = 5

// Result is the parsed output of a crew run.
type Result struct {
	Days     []types.DayPlan
	Places   []types.Place
	Tips     types.Tips
	Research string
	Weather  []types.DailyWeather
	Origin   *types.Coordinates
}

type Crew struct {
	llm      generativeAI.Generator
	geocoder providers.Geocoder
	weather  providers.WeatherProvider
	search   providers.SearchProvider
	guide    *guide.Guide
	logger   *slog.Logger
}

// New builds a crew. geocoder, weather and search may be nil; the research
// task then runs without that context.
func New(llm generativeAI.Generator, geocoder providers.Geocoder, weather providers.WeatherProvider,
	search providers.SearchProvider, g *guide.Guide, logger *slog.Logger) *Crew {
	if g == nil {
		g = guide.New()
	}
	return &Crew{
		llm:      llm,
		geocoder: geocoder,
		weather:  weather,
		search:   search,
		guide:    g,
		logger:   logger,
	}
}

// Run executes every task. Any failure is returned wrapped in
// types.ErrStrategyFailed.
func (c *Crew) Run(ctx context.Context, prefs types.UserPreferences) (*Result, error) {
	ctx, span := otel.Tracer("Crew").Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("destination", prefs.Destination),
		attribute.Int("num_days", prefs.NumDays()),
	)
	l := c.logger.With(slog.String("strategy", "crew"), slog.String("destination", prefs.Destination))

	if c.llm == nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStrategyFailed, types.ErrNotConfigured)
	}

	res := &Result{}
	var guideMarkdown string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		guideMarkdown, err = c.generate(gctx, "guide", guidePrompt(prefs))
		return err
	})
	g.Go(func() error {
		return c.plan(gctx, prefs, res, l)
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "crew run failed")
		l.WarnContext(ctx, "crew run failed", slog.Any("error", err))
		return nil, err
	}

	res.Tips = guide.Merge(parseTips(guideMarkdown), c.guide.Tips(prefs.Locale, prefs.Destination))

	span.SetStatus(codes.Ok, "crew run completed")
	l.InfoContext(ctx, "crew run completed", slog.Int("days", len(res.Days)), slog.Int("places", len(res.Places)))
	return res, nil
}

// plan runs the research, attractions and planner tasks in order.
func (c *Crew) plan(ctx context.Context, prefs types.UserPreferences, res *Result, l *slog.Logger) error {
	res.Origin, res.Weather = c.researchContext(ctx, prefs, l)
	results := c.webSearch(ctx, prefs, l)

	research, err := c.generate(ctx, "research", researchPrompt(prefs, res.Origin, res.Weather, results))
	if err != nil {
		return err
	}
	res.Research = research

	raw, err := c.generate(ctx, "attractions", attractionsPrompt(prefs, research))
	if err != nil {
		return err
	}
	candidates, err := parseCandidates(raw)
	if err != nil {
		return fmt.Errorf("%w: attractions: %w", types.ErrStrategyFailed, err)
	}
	valid := make([]types.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if err := cand.Validate(); err != nil {
			l.DebugContext(ctx, "dropping candidate", slog.Any("error", err))
			continue
		}
		valid = append(valid, cand)
	}
	if len(valid) == 0 {
		return fmt.Errorf("%w: attractions: no valid places", types.ErrStrategyFailed)
	}

	rawPlan, err := c.generate(ctx, "planner", plannerPrompt(prefs, valid))
	if err != nil {
		return err
	}
	planned, err := parsePlan(rawPlan)
	if err != nil {
		return fmt.Errorf("%w: planner: %w", types.ErrStrategyFailed, err)
	}

	days, err := resolveDays(prefs, planned, valid)
	if err != nil {
		return err
	}
	res.Days = days
	res.Places = make([]types.Place, 0, len(valid))
	for _, cand := range valid {
		res.Places = append(res.Places, cand.Place())
	}
	return nil
}

// researchContext gathers coordinates and a forecast for the research task. Both
// are optional.
func (c *Crew) researchContext(ctx context.Context, prefs types.UserPreferences, l *slog.Logger) (*types.Coordinates, []types.DailyWeather) {
	if c.geocoder == nil {
		return nil, nil
	}
	coords, err := c.geocoder.Geocode(ctx, prefs.Destination)
	if err != nil {
		l.DebugContext(ctx, "research without coordinates", slog.Any("error", err))
		return nil, nil
	}
	if c.weather == nil {
		return &coords, nil
	}
	forecast, err := c.weather.Daily(ctx, coords, prefs.Dates())
	if err != nil {
		l.DebugContext(ctx, "research without forecast", slog.Any("error", err))
		return &coords, nil
	}
	return &coords, forecast
}

func (c *Crew) webSearch(ctx context.Context, prefs types.UserPreferences, l *slog.Logger) []providers.SearchResult {
	if c.search == nil {
		return nil
	}
	query := fmt.Sprintf("%s travel events festivals %s", prefs.Destination, prefs.Start().Format("January 2006"))
	results, err := c.search.Search(ctx, query, maxSearchResults)
	if err != nil {
		l.DebugContext(ctx, "research without web results", slog.Any("error", err))
		return nil
	}
	return results
}

func (c *Crew) generate(ctx context.Context, task, prompt string) (string, error) {
	ctx, span := otel.Tracer("Crew").Start(ctx, task)
	defer span.End()

	out, err := c.llm.GenerateContent(ctx, prompt, nil)
	if err == nil && strings.TrimSpace(out) == "" {
		err = generativeAI.ErrEmptyResponse
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, task+" failed")
		return "", fmt.Errorf("%w: %s: %w", types.ErrStrategyFailed, task, err)
	}
	span.SetAttributes(attribute.Int("response.length", len(out)))
	return out, nil
}

var errNoPlaces = errors.New("plan references no known places")

// resolveDays maps planned place names onto the validated candidates.
// Unknown names are dropped and transfers are recomputed from coordinates.
func resolveDays(prefs types.UserPreferences, planned []plannedDay, candidates []types.Candidate) ([]types.DayPlan, error) {
	dates := prefs.Dates()
	if len(planned) != len(dates) {
		return nil, fmt.Errorf("%w: planner returned %d days, want %d", types.ErrStrategyFailed, len(planned), len(dates))
	}

	byName := make(map[string]types.Place, len(candidates))
	for _, cand := range candidates {
		key := strings.ToLower(cand.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = cand.Place()
		}
	}
	lookup := func(names []string) []types.Place {
		out := make([]types.Place, 0, len(names))
		for _, n := range names {
			if p, ok := byName[strings.ToLower(strings.TrimSpace(n))]; ok {
				out = append(out, p)
			}
		}
		return out
	}

	days := make([]types.DayPlan, 0, len(planned))
	total := 0
	for i, pd := range planned {
		day := types.DayPlan{
			Date:      dates[i],
			Morning:   lookup(pd.Morning),
			Afternoon: lookup(pd.Afternoon),
			Evening:   lookup(pd.Evening),
			Lunch:     strings.TrimSpace(pd.Lunch),
			Dinner:    strings.TrimSpace(pd.Dinner),
		}
		day.Transfers = geo.Transfers(day.Places(), prefs.TransportMode)
		total += len(day.Places())
		days = append(days, day)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %w", types.ErrStrategyFailed, errNoPlaces)
	}
	return days, nil
}
