package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPrefs() UserPreferences {
	return UserPreferences{
		Destination: "Paris",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-03",
		Interests:   []string{"art", "food"},
	}.WithDefaults("ko_KR")
}

func TestUserPreferences_WithDefaults(t *testing.T) {
	p := UserPreferences{Destination: "  Rome ", Interests: []string{" art "}}.WithDefaults("en_US")

	assert.Equal(t, "Rome", p.Destination)
	assert.Equal(t, []string{"art"}, p.Interests)
	assert.Equal(t, PaceBalanced, p.Pace)
	assert.Equal(t, BudgetMid, p.BudgetLevel)
	assert.Equal(t, 1, p.Party)
	assert.Equal(t, "en_US", p.Locale)
	assert.Equal(t, TransportWalking, p.TransportMode)
}

func TestUserPreferences_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := validPrefs()
		require.NoError(t, p.Validate())
		assert.Equal(t, 3, p.NumDays())
		assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, p.Dates())
	})

	tests := []struct {
		name   string
		mutate func(p *UserPreferences)
		field  string
	}{
		{"missing destination", func(p *UserPreferences) { p.Destination = "" }, "destination"},
		{"bad date", func(p *UserPreferences) { p.StartDate = "06/01/2024" }, "start_date"},
		{"end before start", func(p *UserPreferences) { p.EndDate = "2024-05-30" }, "end_date"},
		{"same day", func(p *UserPreferences) { p.EndDate = p.StartDate }, "end_date"},
		{"too long", func(p *UserPreferences) { p.EndDate = "2024-08-01" }, "end_date"},
		{"no interests", func(p *UserPreferences) { p.Interests = nil }, "interests"},
		{"blank interest", func(p *UserPreferences) { p.Interests = []string{"art", ""} }, "interests[1]"},
		{"bad pace", func(p *UserPreferences) { p.Pace = "sprint" }, "pace"},
		{"party too large", func(p *UserPreferences) { p.Party = 21 }, "party"},
		{"bad transport", func(p *UserPreferences) { p.TransportMode = "teleport" }, "transport_mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPrefs()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestTransportMode_TransferMode(t *testing.T) {
	assert.Equal(t, TransferWalk, TransportWalking.TransferMode())
	assert.Equal(t, TransferBike, TransportBicycling.TransferMode())
	assert.Equal(t, TransferTransit, TransportTransit.TransferMode())
	assert.Equal(t, TransferDrive, TransportDriving.TransferMode())
	assert.Equal(t, TransferWalk, TransportMode("").TransferMode())
}

func TestCandidate_Validate(t *testing.T) {
	t.Run("clamps stay and defaults category", func(t *testing.T) {
		c := Candidate{Name: " Louvre ", Lat: 48.86, Lon: 2.33, EstStayMin: 900}
		require.NoError(t, c.Validate())
		assert.Equal(t, "Louvre", c.Name)
		assert.Equal(t, "general", c.Category)
		assert.Equal(t, MaxStayMin, c.EstStayMin)

		c.EstStayMin = 5
		require.NoError(t, c.Validate())
		assert.Equal(t, MinStayMin, c.EstStayMin)
	})

	t.Run("missing stay becomes default", func(t *testing.T) {
		c := Candidate{Name: "Park", Category: "Park"}
		require.NoError(t, c.Validate())
		assert.Equal(t, DefaultStayMin, c.EstStayMin)
		assert.Equal(t, "park", c.Category)
	})

	t.Run("rejects", func(t *testing.T) {
		for _, c := range []Candidate{
			{Name: ""},
			{Name: "x", Lat: 91},
			{Name: "x", Lon: -181},
		} {
			assert.Error(t, c.Validate())
		}
	})

	t.Run("drops out of range price level", func(t *testing.T) {
		lvl := 9
		c := Candidate{Name: "x", PriceLevel: &lvl}
		require.NoError(t, c.Validate())
		assert.Nil(t, c.PriceLevel)
	})
}

func TestDayPlan_Helpers(t *testing.T) {
	d := DayPlan{
		Morning:   []Place{{Name: "a"}},
		Afternoon: []Place{{Name: "b"}},
		Evening:   []Place{{Name: "c"}},
		Transfers: []Transfer{{TravelMin: 10}, {TravelMin: 15}},
	}
	names := []string{}
	for _, p := range d.Places() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, 25, d.TotalTravelMinutes())

	c := d.Clone()
	c.Morning[0].Name = "changed"
	assert.Equal(t, "a", d.Morning[0].Name)
}

func TestDailyWeather_Adverse(t *testing.T) {
	assert.True(t, DailyWeather{Condition: ConditionRain}.Adverse())
	assert.True(t, DailyWeather{Condition: ConditionStorm}.Adverse())
	assert.False(t, DailyWeather{Condition: ConditionClouds}.Adverse())
	assert.True(t, AnyAdverse([]DailyWeather{{Condition: ConditionClear}, {Condition: ConditionSnow}}))
	assert.False(t, AnyAdverse(nil))
}

func TestFeedbackRequest_Validate(t *testing.T) {
	require.NoError(t, FeedbackRequest{Satisfaction: 5, Category: "places"}.Validate())

	err := FeedbackRequest{Satisfaction: 6, Category: "weather"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	assert.Equal(t, "other", FeedbackRequest{Satisfaction: 3}.Normalised().Category)
}

func TestNewFetchError(t *testing.T) {
	assert.Nil(t, NewFetchError("weather", nil))
	err := NewFetchError("weather", ErrNotConfigured)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "weather: provider not configured", err.Error())
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2024-06-01", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01"}, dates)

	dates, err = DateRange("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, dates)

	var verr *ValidationError
	_, err = DateRange("2024-06-02", "2024-06-01")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Fields[0].Field)

	_, err = DateRange("tomorrow", "2024-06-01")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_date", verr.Fields[0].Field)
}

func TestFieldMessages(t *testing.T) {
	type sample struct {
		Name  string   `json:"name" validate:"min=3,max=5"`
		Tags  []string `json:"tags" validate:"min=2"`
		Count int      `json:"count" validate:"min=1"`
	}
	messages := func(s sample) map[string]string {
		verr := &ValidationError{}
		collectFieldErrors(verr, validate.Struct(s))
		out := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			out[f.Field] = f.Message
		}
		return out
	}

	got := messages(sample{Name: "ab", Tags: []string{"x"}})
	assert.Equal(t, "must be at least 3 characters", got["name"])
	assert.Equal(t, "must contain at least 2 item(s)", got["tags"])
	assert.Equal(t, "must be at least 1", got["count"])

	got = messages(sample{Name: "abcdef", Tags: []string{"x", "y"}, Count: 1})
	assert.Equal(t, "must be at most 5 characters", got["name"])
}
