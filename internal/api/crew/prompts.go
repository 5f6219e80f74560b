package crew

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	roleResearcher  = "You are a travel destination research specialist."
	roleAttractions = "You are an attractions and places specialist."
	rolePlanner     = "You are an itinerary planning expert."
	roleGuide       = "You are a local culture and travel guide."
)

func interestsText(prefs types.UserPreferences) string {
	if len(prefs.Interests) == 0 {
		return "general sightseeing"
	}
	return strings.Join(prefs.Interests, ", ")
}

func researchPrompt(prefs types.UserPreferences, coords *types.Coordinates, weather []types.DailyWeather, results []providers.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nResearch travel information for %q.\n", roleResearcher, prefs.Destination)
	fmt.Fprintf(&b, "Travel dates: %s to %s\nInterests: %s\n", prefs.StartDate, prefs.EndDate, interestsText(prefs))
	if coords != nil {
		fmt.Fprintf(&b, "Location: %s (%.4f, %.4f)\n", coords.DisplayName, coords.Lat, coords.Lon)
	}
	if len(weather) > 0 {
		b.WriteString("Forecast:\n")
		for _, w := range weather {
			fmt.Fprintf(&b, "- %s: %s, %.0f°C\n", w.Date, w.Summary, w.TempC)
		}
	}
	if len(results) > 0 {
		b.WriteString("Recent web results:\n")
		for _, r := range results {
			fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.URL, truncate(r.Content, 300))
		}
	}
	b.WriteString("\nWrite markdown covering: seasonal notes and weather, festivals and events, " +
		"travel warnings, the best time to visit and local cultural traits.")
	return b.String()
}

func attractionsPrompt(prefs types.UserPreferences, research string) string {
	return fmt.Sprintf(`%s
Select attractions in %q matching:
- interests: %s
- pace: %s
- budget level: %s
- party size: %d

Research notes:
%s

Return ONLY a JSON array, no commentary:
[
  {
    "name": "place name",
    "category": "museum|landmark|park|restaurant|gallery|shopping|...",
    "lat": 0.0,
    "lon": 0.0,
    "description": "short description",
    "est_stay_min": 60,
    "rating": 4.5,
    "price_level": 2
  }
]
Recommend 8-15 places across varied categories.`,
		roleAttractions, prefs.Destination, interestsText(prefs), prefs.Pace, prefs.BudgetLevel, prefs.Party,
		truncate(research, 2000))
}

func plannerPrompt(prefs types.UserPreferences, candidates []types.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, fmt.Sprintf("- %s (%s, %d min)", c.Name, c.Category, c.EstStayMin))
	}
	return fmt.Sprintf(`%s
Plan a day-by-day itinerary for %q from %s to %s (%d days), pace %s.
Use only these places, referenced by their exact name:
%s

Return ONLY JSON in this shape:
{
  "days": [
    {
      "date": "YYYY-MM-DD",
      "morning": ["place name"],
      "lunch": "lunch suggestion",
      "afternoon": ["place name"],
      "dinner": "dinner suggestion",
      "evening": ["place name"]
    }
  ]
}
Return exactly %d days. Adjust the number of places per day to the pace and keep walking distances short.`,
		rolePlanner, prefs.Destination, prefs.StartDate, prefs.EndDate, prefs.NumDays(), prefs.Pace,
		strings.Join(names, "\n"), prefs.NumDays())
}

func guidePrompt(prefs types.UserPreferences) string {
	return fmt.Sprintf(`%s
Provide local guide information for visiting %q. Answer in the language of locale %s.
Use this markdown layout with bullet points:
## Etiquette
- ...
## Packing
- ...
## Safety
- ...
## Local tips
- ...`, roleGuide, prefs.Destination, prefs.Locale)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
