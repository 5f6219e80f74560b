package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api/attractions"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/critic"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/geo"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/planner"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

func benchLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// randomCandidates scatters n places within about 5 km of central Paris.
func randomCandidates(n int) []types.Candidate {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"museum", "landmark", "park", "food", "shopping", "gallery"}
	out := make([]types.Candidate, 0, n)
	for i := 0; i < n; i++ {
		r := 3.5 + rng.Float64()*1.5
		out = append(out, types.Candidate{
			Name:       fmt.Sprintf("Place %d", i),
			Category:   categories[i%len(categories)],
			Lat:        paris.Lat + (rng.Float64()-0.5)*0.08,
			Lon:        paris.Lon + (rng.Float64()-0.5)*0.12,
			Rating:     &r,
			EstStayMin: 45 + rng.Intn(4)*30,
		})
	}
	return out
}

func benchPrefs(days int) types.UserPreferences {
	end := fmt.Sprintf("2025-10-%02d", days)
	return types.UserPreferences{
		Destination: "Paris",
		StartDate:   "2025-10-01",
		EndDate:     end,
		Interests:   []string{"museum", "food", "park"},
	}.WithDefaults("en_US")
}

func BenchmarkDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		geo.Distance(48.8606, 2.3376, 48.8530, 2.3499)
	}
}

func BenchmarkSelector(b *testing.B) {
	ctx := context.Background()
	s := attractions.NewSelector(benchLogger())
	prefs := benchPrefs(5)
	cands := randomCandidates(20)
	weather := providers.DemoWeather(prefs.Dates())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Select(ctx, prefs, cands, weather)
	}
}

func BenchmarkPlanner(b *testing.B) {
	ctx := context.Background()
	for _, days := range []int{2, 5, 10} {
		b.Run(fmt.Sprintf("days=%d", days), func(b *testing.B) {
			prefs := benchPrefs(days)
			places := attractions.NewSelector(benchLogger()).Select(ctx, prefs, randomCandidates(20), nil)
			p := planner.NewPlanner(benchLogger())
			req := planner.Request{Prefs: prefs, Places: places, Weather: providers.DemoWeather(prefs.Dates()), Origin: &paris}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p.Plan(ctx, req)
			}
		})
	}
}

func BenchmarkCritic(b *testing.B) {
	ctx := context.Background()
	prefs := benchPrefs(5)
	places := attractions.NewSelector(benchLogger()).Select(ctx, prefs, randomCandidates(20), nil)
	days := planner.NewPlanner(benchLogger()).Plan(ctx, planner.Request{Prefs: prefs, Places: places})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		critic.Validate(days)
		critic.Critique(prefs, days)
	}
}

func BenchmarkPlanHandler(b *testing.B) {
	logger := benchLogger()
	heuristic := itinerary.NewHeuristic(itinerary.Collaborators{}, nil, logger)
	h := itinerary.NewHandler(itinerary.NewServiceImpl(heuristic, nil, itinerary.Collaborators{}, nil, "en_US", logger), logger)
	body := `{"destination":"Paris","start_date":"2025-10-01","end_date":"2025-10-03","interests":["history","food"]}`

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Plan(rr, httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(body)))
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}
