package types

import "time"

// Transfer connects two consecutive places of a day.
type Transfer struct {
	FromPlace  string       `json:"from_place"`
	ToPlace    string       `json:"to_place"`
	TravelMin  int          `json:"travel_min"`
	DistanceKm float64      `json:"distance_km"`
	Mode       TransferMode `json:"mode"`
}

type DayPlan struct {
	Date      string     `json:"date"`
	Morning   []Place    `json:"morning"`
	Afternoon []Place    `json:"afternoon"`
	Evening   []Place    `json:"evening"`
	Lunch     string     `json:"lunch,omitempty"`
	Dinner    string     `json:"dinner,omitempty"`
	Transfers []Transfer `json:"transfers"`
}

// Places returns morning, afternoon and evening in visiting order.
func (d DayPlan) Places() []Place {
	out := make([]Place, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	out = append(out, d.Morning...)
	out = append(out, d.Afternoon...)
	return append(out, d.Evening...)
}

func (d DayPlan) TotalTravelMinutes() int {
	total := 0
	for _, t := range d.Transfers {
		total += t.TravelMin
	}
	return total
}

// Clone returns a deep copy so stages never share backing arrays.
func (d DayPlan) Clone() DayPlan {
	d.Morning = append([]Place(nil), d.Morning...)
	d.Afternoon = append([]Place(nil), d.Afternoon...)
	d.Evening = append([]Place(nil), d.Evening...)
	d.Transfers = append([]Transfer(nil), d.Transfers...)
	return d
}

type Tips struct {
	Etiquette         []string          `json:"etiquette"`
	Packing           []string          `json:"packing"`
	Safety            []string          `json:"safety"`
	LocalCustoms      []string          `json:"local_customs,omitempty"`
	EmergencyContacts map[string]string `json:"emergency_contacts,omitempty"`
}

// CritiqueReport is the advisory quality score of an itinerary.
type CritiqueReport struct {
	Score       int                 `json:"score"`
	Acceptable  bool                `json:"acceptable"`
	Issues      map[string][]string `json:"issues"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

type Itinerary struct {
	Summary     string           `json:"summary"`
	Days        []DayPlan        `json:"days"`
	Tips        Tips             `json:"tips"`
	WeatherInfo []DailyWeather   `json:"weather_info,omitempty"`
	LocalInfo   *DestinationInfo `json:"local_info,omitempty"`
	Critique    *CritiqueReport  `json:"critique,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type PlanResponse struct {
	Itinerary      *Itinerary `json:"itinerary"`
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	Mode           string     `json:"mode"`
	ProcessingTime float64    `json:"processing_time"`
}

// PlanOptions toggles the optional enrichment attached to a plan.
type PlanOptions struct {
	IncludeWeather   bool
	IncludeLocalInfo bool
}
