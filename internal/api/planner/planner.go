// Package planner distributes selected places over the days of a trip and
// sequences each day.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api/geo"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	FallbackStayMin = 180
	BreakStayMin    = 30
	BreakName       = "Café break"
)

// Request is the input of a planning run. Origin is the geocoded destination
// centre and may be nil.
type Request struct {
	Prefs   types.UserPreferences
	Places  []types.Place
	Weather []types.DailyWeather
	Origin  *types.Coordinates
}

type Planner struct {
	logger *slog.Logger
}

func NewPlanner(logger *slog.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan returns one DayPlan per calendar day. Every stage works on its own
// copy of the days so earlier snapshots are never modified.
func (p *Planner) Plan(ctx context.Context, req Request) []types.DayPlan {
	ctx, span := otel.Tracer("DayPlanner").Start(ctx, "Plan")
	defer span.End()

	dates := req.Prefs.Dates()
	span.SetAttributes(attribute.Int("days", len(dates)), attribute.Int("places", len(req.Places)))

	if len(req.Places) == 0 {
		p.logger.InfoContext(ctx, "No places available, using fallback days",
			slog.String("destination", req.Prefs.Destination))
		return fallbackDays(req.Prefs, dates, req.Origin)
	}

	days := basicDays(req.Prefs.Pace, dates, req.Places)
	days = trimForPace(days, req.Prefs.Pace)
	days = adjustForWeather(days, req.Weather)
	days = optimizeRoutes(days)
	days = withTransfers(days, req.Prefs.TransportMode)
	days = addMealsAndBreaks(days, req.Prefs)

	p.logger.DebugContext(ctx, "Days planned", slog.Int("days", len(days)))
	return days
}

// FallbackDays is one generic exploration activity per trip day.
func FallbackDays(prefs types.UserPreferences, origin *types.Coordinates) []types.DayPlan {
	return fallbackDays(prefs, prefs.Dates(), origin)
}

func fallbackDays(prefs types.UserPreferences, dates []string, origin *types.Coordinates) []types.DayPlan {
	place := types.Place{
		Name:        prefs.Destination + " exploration",
		Category:    "general",
		Description: "Explore " + prefs.Destination + " at your own pace",
		EstStayMin:  FallbackStayMin,
		Kind:        types.KindFallback,
	}
	if origin != nil {
		place.Lat, place.Lon = origin.Lat, origin.Lon
	}

	days := make([]types.DayPlan, 0, len(dates))
	for _, date := range dates {
		days = append(days, types.DayPlan{
			Date:      date,
			Morning:   []types.Place{place},
			Afternoon: []types.Place{},
			Evening:   []types.Place{},
			Lunch:     "Local food experience in " + prefs.Destination,
			Dinner:    "Dinner in " + prefs.Destination,
			Transfers: []types.Transfer{},
		})
	}
	return days
}

func perDay(pace types.Pace, n, numDays int) int {
	lo, hi := 3, 5
	switch pace {
	case types.PaceRelaxed:
		lo, hi = 2, 4
	case types.PacePacked:
		lo, hi = 4, 6
	}
	return max(lo, min(hi, n/max(1, numDays)))
}

// basicDays consumes places in order, restarting from the first place once
// the list is exhausted.
func basicDays(pace types.Pace, dates []string, places []types.Place) []types.DayPlan {
	n := len(places)
	size := perDay(pace, n, len(dates))

	days := make([]types.DayPlan, 0, len(dates))
	cursor := 0
	for _, date := range dates {
		end := min(cursor+size, n)
		chunk := append([]types.Place(nil), places[cursor:end]...)
		cursor += size
		if cursor >= n {
			cursor = 0
			if len(chunk) == 0 {
				chunk = []types.Place{places[0]}
			}
		}

		day := types.DayPlan{
			Date:      date,
			Morning:   []types.Place{},
			Afternoon: []types.Place{},
			Evening:   []types.Place{},
			Transfers: []types.Transfer{},
		}
		if len(chunk) > 0 {
			day.Morning = chunk[:1]
		}
		if len(chunk) > 1 {
			day.Afternoon = chunk[1:2]
		}
		if len(chunk) > 2 {
			day.Evening = chunk[2:]
		}
		days = append(days, day.Clone())
	}
	return days
}

func trimForPace(days []types.DayPlan, pace types.Pace) []types.DayPlan {
	limit := 0
	switch pace {
	case types.PaceRelaxed:
		limit = 2
	case types.PacePacked:
		limit = 3
	}

	out := make([]types.DayPlan, 0, len(days))
	for _, d := range days {
		d = d.Clone()
		if limit > 0 {
			d.Morning = capPlaces(d.Morning, limit)
			d.Afternoon = capPlaces(d.Afternoon, limit)
			d.Evening = capPlaces(d.Evening, limit)
		}
		out = append(out, d)
	}
	return out
}

func capPlaces(places []types.Place, limit int) []types.Place {
	if len(places) > limit {
		return places[:limit]
	}
	return places
}

// forecastFor matches a forecast by date and falls back to the day index.
func forecastFor(weather []types.DailyWeather, i int, date string) (types.DailyWeather, bool) {
	for _, w := range weather {
		if w.Date == date {
			return w, true
		}
	}
	if i < len(weather) && weather[i].Date == "" {
		return weather[i], true
	}
	return types.DailyWeather{}, false
}

// adjustForWeather moves indoor places to the morning on adverse days.
func adjustForWeather(days []types.DayPlan, weather []types.DailyWeather) []types.DayPlan {
	out := make([]types.DayPlan, 0, len(days))
	for i, d := range days {
		d = d.Clone()
		w, ok := forecastFor(weather, i, d.Date)
		if !ok || !w.Adverse() {
			out = append(out, d)
			continue
		}

		var indoor, outdoor []types.Place
		for _, p := range d.Places() {
			if p.Indoor() {
				indoor = append(indoor, p)
			} else {
				outdoor = append(outdoor, p)
			}
		}

		d.Morning = window(indoor, 0, 2)
		if len(outdoor) > 0 {
			d.Afternoon = window(outdoor, 0, 2)
		} else {
			d.Afternoon = window(indoor, 2, 4)
		}
		if len(outdoor) > 2 {
			d.Evening = window(outdoor, 2, 4)
		} else {
			d.Evening = window(indoor, 4, 6)
		}
		out = append(out, d)
	}
	return out
}

// window is a bounds-safe copy of places[from:to].
func window(places []types.Place, from, to int) []types.Place {
	from = min(from, len(places))
	to = min(to, len(places))
	return append([]types.Place{}, places[from:to]...)
}

// nearestNeighbour keeps the first place and repeatedly visits the closest
// remaining one. Ties go to the earlier place.
func nearestNeighbour(places []types.Place) []types.Place {
	if len(places) <= 1 {
		return append([]types.Place(nil), places...)
	}
	remaining := append([]types.Place(nil), places[1:]...)
	ordered := make([]types.Place, 0, len(places))
	ordered = append(ordered, places[0])

	for len(remaining) > 0 {
		current := ordered[len(ordered)-1]
		best := 0
		bestDist := geo.Between(current, remaining[0])
		for i := 1; i < len(remaining); i++ {
			if d := geo.Between(current, remaining[i]); d < bestDist {
				best, bestDist = i, d
			}
		}
		ordered = append(ordered, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// optimizeRoutes reorders each day's places by nearest neighbour and
// re-splits them into the original morning/afternoon/evening sizes.
func optimizeRoutes(days []types.DayPlan) []types.DayPlan {
	out := make([]types.DayPlan, 0, len(days))
	for _, d := range days {
		d = d.Clone()
		all := d.Places()
		if len(all) < 2 {
			out = append(out, d)
			continue
		}
		ordered := nearestNeighbour(all)
		m, a := len(d.Morning), len(d.Afternoon)
		d.Morning = window(ordered, 0, m)
		d.Afternoon = window(ordered, m, m+a)
		d.Evening = window(ordered, m+a, len(ordered))
		out = append(out, d)
	}
	return out
}

func withTransfers(days []types.DayPlan, mode types.TransportMode) []types.DayPlan {
	out := make([]types.DayPlan, 0, len(days))
	for _, d := range days {
		d = d.Clone()
		d.Transfers = geo.Transfers(d.Places(), mode)
		out = append(out, d)
	}
	return out
}

func addMealsAndBreaks(days []types.DayPlan, prefs types.UserPreferences) []types.DayPlan {
	out := make([]types.DayPlan, 0, len(days))
	for _, d := range days {
		d = d.Clone()
		if len(d.Morning) > 0 {
			d.Lunch = "Lunch near " + d.Morning[len(d.Morning)-1].Name
		}
		if len(d.Afternoon) > 0 {
			d.Dinner = "Dinner near " + d.Afternoon[len(d.Afternoon)-1].Name
		}
		if prefs.Pace == types.PaceRelaxed && len(d.Morning) > 0 && len(d.Afternoon) > 0 {
			last := d.Morning[len(d.Morning)-1]
			pause := types.Place{
				Name:        BreakName,
				Category:    "cafe",
				Lat:         last.Lat,
				Lon:         last.Lon,
				Description: "Rest after the morning visits",
				EstStayMin:  BreakStayMin,
				Kind:        types.KindBreak,
			}
			d.Afternoon = append([]types.Place{pause}, d.Afternoon...)
			d.Transfers = geo.Transfers(d.Places(), prefs.TransportMode)
		}
		out = append(out, d)
	}
	return out
}

// Summary renders a plain text overview of the days.
func Summary(days []types.DayPlan) string {
	if len(days) == 0 {
		return "No itinerary could be planned."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d-day itinerary:\n\n", len(days))
	for _, d := range days {
		fmt.Fprintf(&b, "%s\n", d.Date)
		writeSlot(&b, "Morning", d.Morning)
		if d.Lunch != "" {
			fmt.Fprintf(&b, "Lunch: %s\n", d.Lunch)
		}
		writeSlot(&b, "Afternoon", d.Afternoon)
		if d.Dinner != "" {
			fmt.Fprintf(&b, "Dinner: %s\n", d.Dinner)
		}
		writeSlot(&b, "Evening", d.Evening)
		if len(d.Transfers) > 0 {
			km := 0.0
			for _, t := range d.Transfers {
				km += t.DistanceKm
			}
			fmt.Fprintf(&b, "Travel: %d min, %.1f km\n", d.TotalTravelMinutes(), km)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeSlot(b *strings.Builder, label string, places []types.Place) {
	if len(places) == 0 {
		return
	}
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(names, ", "))
}
