package crew

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var errNoJSON = errors.New("no JSON found in response")

// extractJSON strips markdown fences and returns the text between the first
// opening and the last closing delimiter.
func extractJSON(response string, open, close byte) (string, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	first := strings.IndexByte(response, open)
	last := strings.LastIndexByte(response, close)
	if first == -1 || last <= first {
		return "", errNoJSON
	}
	return response[first : last+1], nil
}

// parseCandidates accepts either a bare array or an object with a
// "places" or "attractions" array.
func parseCandidates(response string) ([]types.Candidate, error) {
	if raw, err := extractJSON(response, '[', ']'); err == nil {
		var out []types.Candidate
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return out, nil
		}
	}
	raw, err := extractJSON(response, '{', '}')
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Places      []types.Candidate `json:"places"`
		Attractions []types.Candidate `json:"attractions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode attractions: %w", err)
	}
	if len(wrapped.Places) > 0 {
		return wrapped.Places, nil
	}
	return wrapped.Attractions, nil
}

// plannedDay is the planner task's answer. Transfers the model may add are
// not read.
type plannedDay struct {
	Date      string   `json:"date"`
	Morning   []string `json:"morning"`
	Lunch     string   `json:"lunch"`
	Afternoon []string `json:"afternoon"`
	Dinner    string   `json:"dinner"`
	Evening   []string `json:"evening"`
}

func parsePlan(response string) ([]plannedDay, error) {
	raw, err := extractJSON(response, '{', '}')
	if err != nil {
		return nil, err
	}
	var plan struct {
		Days []plannedDay `json:"days"`
	}
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return plan.Days, nil
}

// parseTips reads bullet points under markdown headings.
func parseTips(markdown string) types.Tips {
	var tips types.Tips
	var section *[]string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			section = sectionFor(&tips, strings.ToLower(line))
			continue
		}
		item, ok := bullet(line)
		if !ok || section == nil {
			continue
		}
		*section = append(*section, item)
	}
	return tips
}

func sectionFor(tips *types.Tips, heading string) *[]string {
	switch {
	case containsAny(heading, "etiquette", "culture", "manners", "예의", "문화"):
		return &tips.Etiquette
	case containsAny(heading, "pack", "bring", "준비물"):
		return &tips.Packing
	case containsAny(heading, "safety", "caution", "안전", "주의"):
		return &tips.Safety
	case containsAny(heading, "tip", "custom", "팁"):
		return &tips.LocalCustoms
	}
	return nil
}

func bullet(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• ", "+ "} {
		if strings.HasPrefix(line, prefix) {
			item := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			item = strings.Trim(item, "*")
			return strings.TrimSpace(item), item != ""
		}
	}
	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
