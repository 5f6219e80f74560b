package types

type WeatherCondition string

const (
	ConditionClear   WeatherCondition = "clear"
	ConditionClouds  WeatherCondition = "clouds"
	ConditionRain    WeatherCondition = "rain"
	ConditionSnow    WeatherCondition = "snow"
	ConditionStorm   WeatherCondition = "storm"
	ConditionUnknown WeatherCondition = "unknown"
)

// DailyWeather is the forecast for one calendar day.
type DailyWeather struct {
	Date      string           `json:"date"`
	Summary   string           `json:"summary"`
	Condition WeatherCondition `json:"condition"`
	TempC     float64          `json:"temp_c"`
	Demo      bool             `json:"demo,omitempty"`
}

// Adverse reports rain, snow or storm.
func (w DailyWeather) Adverse() bool {
	switch w.Condition {
	case ConditionRain, ConditionSnow, ConditionStorm:
		return true
	}
	return false
}

// AnyAdverse is true when at least one day of the forecast is adverse.
func AnyAdverse(days []DailyWeather) bool {
	for _, d := range days {
		if d.Adverse() {
			return true
		}
	}
	return false
}

type Coordinates struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// DestinationInfo is the encyclopedia summary of a destination.
type DestinationInfo struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	URL      string `json:"url,omitempty"`
	Language string `json:"language"`
}
