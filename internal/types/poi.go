package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultStayMin = 60
	MinStayMin     = 15
	MaxStayMin     = 480
)

// PlaceKind distinguishes scheduled visits from planner-made entries.
type PlaceKind string

const (
	KindVisit    PlaceKind = "visit"
	KindBreak    PlaceKind = "break"
	KindFallback PlaceKind = "fallback"
)

// Candidate is a raw place as returned by a place provider or the LLM,
// before it has been checked and turned into a Place.
type Candidate struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	EstStayMin  int      `json:"est_stay_min,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
	Address     string   `json:"address,omitempty"`
}

var errBadCandidate = errors.New("invalid candidate")

// Validate normalises c and reports whether it can be scheduled. Stay times
// outside 15..480 are clamped and a missing stay becomes 60 minutes.
func (c *Candidate) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Category = strings.ToLower(strings.TrimSpace(c.Category))
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", errBadCandidate)
	}
	if c.Category == "" {
		c.Category = "general"
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: %q latitude %v out of range", errBadCandidate, c.Name, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: %q longitude %v out of range", errBadCandidate, c.Name, c.Lon)
	}
	switch {
	case c.EstStayMin == 0:
		c.EstStayMin = DefaultStayMin
	case c.EstStayMin < MinStayMin:
		c.EstStayMin = MinStayMin
	case c.EstStayMin > MaxStayMin:
		c.EstStayMin = MaxStayMin
	}
	if c.PriceLevel != nil && (*c.PriceLevel < 0 || *c.PriceLevel > 4) {
		c.PriceLevel = nil
	}
	return nil
}

// Place converts a validated candidate.
func (c Candidate) Place() Place {
	return Place{
		Name:        c.Name,
		Category:    c.Category,
		Lat:         c.Lat,
		Lon:         c.Lon,
		Description: c.Description,
		URL:         c.URL,
		EstStayMin:  c.EstStayMin,
		Rating:      c.Rating,
		PriceLevel:  c.PriceLevel,
		Kind:        KindVisit,
	}
}

// Place is a schedulable stop. Places are copied by value between stages.
type Place struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	EstStayMin  int       `json:"est_stay_min"`
	Rating      *float64  `json:"rating,omitempty"`
	PriceLevel  *int      `json:"price_level,omitempty"`
	WeatherNote string    `json:"weather_note,omitempty"`
	Kind        PlaceKind `json:"kind"`
}

var indoorCategories = map[string]bool{
	"museum":     true,
	"gallery":    true,
	"shopping":   true,
	"restaurant": true,
}

// Indoor reports whether the place's category is sheltered from weather.
func (p Place) Indoor() bool {
	return indoorCategories[strings.ToLower(p.Category)]
}

// IsVisit is false for café breaks and fallback activities.
func (p Place) IsVisit() bool {
	return p.Kind == "" || p.Kind == KindVisit
}
