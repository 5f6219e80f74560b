// Package attractions scores provider candidates against the traveller's
// preferences and keeps a balanced shortlist.
package attractions

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const WeatherNote = "Weather may be unfavourable, check conditions before going"

type Selector struct {
	logger *slog.Logger
}

func NewSelector(logger *slog.Logger) *Selector {
	return &Selector{logger: logger}
}

type scored struct {
	place types.Place
	score int
}

// Select turns candidates into an ordered, balanced list of places. An empty
// result is valid.
func (s *Selector) Select(ctx context.Context, prefs types.UserPreferences, candidates []types.Candidate, weather []types.DailyWeather) []types.Place {
	_, span := otel.Tracer("AttractionSelector").Start(ctx, "Select")
	defer span.End()

	ranked := s.score(ctx, prefs, candidates)
	ranked = truncateForPace(ranked, prefs.Pace)

	places := make([]types.Place, 0, len(ranked))
	adverse := types.AnyAdverse(weather)
	for _, r := range ranked {
		p := r.place
		if adverse && !p.Indoor() {
			p.WeatherNote = WeatherNote
		}
		places = append(places, p)
	}

	places = rebalance(places)
	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("selected", len(places)),
	)
	return places
}

func (s *Selector) score(ctx context.Context, prefs types.UserPreferences, candidates []types.Candidate) []scored {
	interests := make([]string, 0, len(prefs.Interests))
	for _, i := range prefs.Interests {
		if i = strings.ToLower(strings.TrimSpace(i)); i != "" {
			interests = append(interests, i)
		}
	}

	out := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			s.logger.DebugContext(ctx, "Dropping candidate", slog.Any("error", err))
			continue
		}
		desc := strings.ToLower(c.Description)
		cat := strings.ToLower(c.Category)

		score := 0
		for _, i := range interests {
			if strings.Contains(desc, i) {
				score += 2
			}
			if strings.Contains(cat, i) {
				score++
			}
		}
		if budgetCompatible(prefs.BudgetLevel, c.PriceLevel) {
			score++
		}
		if score == 0 {
			continue
		}
		out = append(out, scored{place: c.Place(), score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// budgetCompatible treats an unknown price level as free.
func budgetCompatible(budget types.BudgetLevel, priceLevel *int) bool {
	level := 0
	if priceLevel != nil {
		level = *priceLevel
	}
	switch budget {
	case types.BudgetLow:
		return level <= 1
	case types.BudgetHigh:
		return true
	default:
		return level <= 2
	}
}

func truncateForPace(ranked []scored, pace types.Pace) []scored {
	var keep func(types.Place) bool
	limit := 10
	switch pace {
	case types.PaceRelaxed:
		keep = func(p types.Place) bool { return p.EstStayMin >= 90 }
		limit = 8
	case types.PacePacked:
		keep = func(p types.Place) bool { return p.EstStayMin <= 120 }
		limit = 12
	}

	out := make([]scored, 0, limit)
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		if keep == nil || keep(r.place) {
			out = append(out, r)
		}
	}
	return out
}

// rebalance keeps at most total/len(categories) places per category, walking
// categories in first-seen order.
func rebalance(places []types.Place) []types.Place {
	if len(places) == 0 {
		return []types.Place{}
	}
	var order []string
	buckets := make(map[string][]types.Place)
	for _, p := range places {
		if _, ok := buckets[p.Category]; !ok {
			order = append(order, p.Category)
		}
		buckets[p.Category] = append(buckets[p.Category], p)
	}

	perCategory := max(1, len(places)/len(order))
	out := make([]types.Place, 0, len(places))
	for _, cat := range order {
		b := buckets[cat]
		if len(b) > perCategory {
			b = b[:perCategory]
		}
		out = append(out, b...)
	}
	if len(out) > len(places) {
		out = out[:len(places)]
	}
	return out
}

// Summary lists the selection per category, at most three names each.
func Summary(places []types.Place) string {
	if len(places) == 0 {
		return "No attractions to recommend."
	}
	var order []string
	names := make(map[string][]string)
	for _, p := range places {
		if _, ok := names[p.Category]; !ok {
			order = append(order, p.Category)
		}
		names[p.Category] = append(names[p.Category], p.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d recommended attractions:\n", len(places))
	for _, cat := range order {
		n := names[cat]
		shown := n
		if len(shown) > 3 {
			shown = shown[:3]
		}
		fmt.Fprintf(&b, "- %s: %s\n", cat, strings.Join(shown, ", "))
		if len(n) > 3 {
			fmt.Fprintf(&b, "  and %d more\n", len(n)-3)
		}
	}
	return b.String()
}
