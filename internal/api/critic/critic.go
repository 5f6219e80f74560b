// Package critic checks planned days for feasibility problems. Its findings
// are advisory and never block an itinerary.
package critic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	LongWalkMinutes  = 120
	MaxAvgTransferKm = 3.0
	AcceptableScore  = 7
	startScore       = 10
)

const (
	categoryBasic      = "basic"
	categoryTime       = "time"
	categoryEfficiency = "efficiency"
	categoryPreference = "preference"
)

var deductionCaps = map[string]int{
	categoryBasic:      4,
	categoryTime:       3,
	categoryEfficiency: 2,
	categoryPreference: 2,
}

// Validate returns one issue per repeated place and per day whose transfers
// exceed the walking threshold. Place names are tracked across all days.
func Validate(days []types.DayPlan) []string {
	issues := append([]string{}, duplicates(days)...)
	for _, d := range days {
		if total := d.TotalTravelMinutes(); total > LongWalkMinutes {
			issues = append(issues, fmt.Sprintf("Long walking time (%d min) on %s", total, d.Date))
		}
	}
	return issues
}

// duplicates reports every repeat of a place name, café breaks and
// fallback activities included.
func duplicates(days []types.DayPlan) []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range days {
		for _, p := range d.Places() {
			if seen[p.Name] {
				out = append(out, fmt.Sprintf("Duplicate place: %s on %s", p.Name, d.Date))
			}
			seen[p.Name] = true
		}
	}
	return out
}

func maxVisitsPerDay(pace types.Pace) int {
	switch pace {
	case types.PaceRelaxed:
		return 4
	case types.PacePacked:
		return 8
	default:
		return 6
	}
}

// Critique scores the days out of ten.
func Critique(prefs types.UserPreferences, days []types.DayPlan) types.CritiqueReport {
	issues := map[string][]string{
		categoryBasic:      {},
		categoryTime:       {},
		categoryEfficiency: {},
		categoryPreference: {},
	}

	issues[categoryBasic] = append(issues[categoryBasic], duplicates(days)...)
	if want := prefs.NumDays(); len(days) != want {
		issues[categoryBasic] = append(issues[categoryBasic],
			fmt.Sprintf("Expected %d days, got %d", want, len(days)))
	}

	limit := maxVisitsPerDay(prefs.Pace)
	for _, d := range days {
		visits := 0
		for _, p := range d.Places() {
			if p.Kind != types.KindBreak {
				visits++
			}
		}
		if visits == 0 {
			issues[categoryBasic] = append(issues[categoryBasic], "No activities on "+d.Date)
		}
		if total := d.TotalTravelMinutes(); total > LongWalkMinutes {
			issues[categoryTime] = append(issues[categoryTime],
				fmt.Sprintf("Long walking time (%d min) on %s", total, d.Date))
		}
		if visits > limit {
			issues[categoryTime] = append(issues[categoryTime],
				fmt.Sprintf("%d activities on %s exceed the %s pace", visits, d.Date, prefs.Pace))
		}
		if len(d.Transfers) > 0 {
			km := 0.0
			for _, t := range d.Transfers {
				km += t.DistanceKm
			}
			if avg := km / float64(len(d.Transfers)); avg > MaxAvgTransferKm {
				issues[categoryEfficiency] = append(issues[categoryEfficiency],
					fmt.Sprintf("Average transfer of %.1f km on %s", avg, d.Date))
			}
		}
	}

	for _, interest := range prefs.Interests {
		if !covered(interest, days) {
			issues[categoryPreference] = append(issues[categoryPreference],
				fmt.Sprintf("Interest %q is not reflected in the plan", interest))
		}
	}

	score := startScore
	for cat, list := range issues {
		score -= min(len(list), deductionCaps[cat])
	}
	score = max(0, score)

	return types.CritiqueReport{
		Score:       score,
		Acceptable:  score >= AcceptableScore,
		Issues:      issues,
		Suggestions: suggestions(issues),
	}
}

func covered(interest string, days []types.DayPlan) bool {
	needle := strings.ToLower(strings.TrimSpace(interest))
	if needle == "" {
		return true
	}
	for _, d := range days {
		for _, p := range d.Places() {
			if !p.IsVisit() {
				continue
			}
			if strings.Contains(strings.ToLower(p.Category), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Name), needle) {
				return true
			}
		}
	}
	return false
}

func suggestions(issues map[string][]string) []string {
	text := map[string]string{
		categoryBasic:      "Spread places so each day has distinct activities",
		categoryTime:       "Reduce the number of stops or choose a faster transport mode",
		categoryEfficiency: "Group nearby attractions on the same day",
		categoryPreference: "Add places matching the missing interests",
	}
	cats := make([]string, 0, len(issues))
	for cat, list := range issues {
		if len(list) > 0 {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	out := make([]string, 0, len(cats))
	for _, cat := range cats {
		out = append(out, text[cat])
	}
	return out
}
