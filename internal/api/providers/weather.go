package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ProviderWeather       = "weather"
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"
	DemoWeatherSummary    = "(demo) mild, chance of clouds"
	DemoWeatherTempC      = 20
)

type WeatherProvider interface {
	Daily(ctx context.Context, coords types.Coordinates, dates []string) ([]types.DailyWeather, error)
}

// DemoWeather is the fallback forecast used when no live data is available.
func DemoWeather(dates []string) []types.DailyWeather {
	out := make([]types.DailyWeather, 0, len(dates))
	for _, d := range dates {
		out = append(out, types.DailyWeather{
			Date:      d,
			Summary:   DemoWeatherSummary,
			Condition: types.ConditionClouds,
			TempC:     DemoWeatherTempC,
			Demo:      true,
		})
	}
	return out
}

// OpenWeather aggregates the 5 day / 3 hour forecast into one entry per date.
type OpenWeather struct {
	http    *httpClient
	baseURL string
	apiKey  string
}

var _ WeatherProvider = (*OpenWeather)(nil)

func NewOpenWeather(client *http.Client, baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *OpenWeather {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeather{
		http:    newHTTPClient(client, timeout, "", logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (o *OpenWeather) Configured() bool { return o.apiKey != "" }

type openWeatherForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

func (o *OpenWeather) Daily(ctx context.Context, coords types.Coordinates, dates []string) ([]types.DailyWeather, error) {
	if !o.Configured() {
		return nil, notConfigured(ProviderWeather)
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", coords.Lat))
	q.Set("lon", fmt.Sprintf("%f", coords.Lon))
	q.Set("units", "metric")
	q.Set("appid", o.apiKey)

	var forecast openWeatherForecast
	if err := o.http.do(ctx, request{
		provider: ProviderWeather,
		method:   http.MethodGet,
		url:      o.baseURL + "/forecast?" + q.Encode(),
	}, &forecast); err != nil {
		return nil, err
	}

	type agg struct {
		temps      []float64
		conditions map[types.WeatherCondition]int
		summary    string
	}
	byDate := make(map[string]*agg)
	for _, item := range forecast.List {
		date := time.Unix(item.Dt, 0).UTC().Format(types.DateLayout)
		a, ok := byDate[date]
		if !ok {
			a = &agg{conditions: make(map[types.WeatherCondition]int)}
			byDate[date] = a
		}
		a.temps = append(a.temps, item.Main.Temp)
		if len(item.Weather) > 0 {
			a.conditions[Condition(item.Weather[0].Main)]++
			if a.summary == "" {
				a.summary = item.Weather[0].Description
			}
		}
	}

	out := make([]types.DailyWeather, 0, len(dates))
	for _, d := range dates {
		a, ok := byDate[d]
		if !ok {
			continue
		}
		sum := 0.0
		for _, t := range a.temps {
			sum += t
		}
		out = append(out, types.DailyWeather{
			Date:      d,
			Summary:   a.summary,
			Condition: dominant(a.conditions),
			TempC:     float64(int(sum/float64(len(a.temps))*10)) / 10,
		})
	}
	if len(out) == 0 {
		return nil, types.NewFetchError(ProviderWeather, types.ErrNotFound)
	}
	return out, nil
}

// Condition maps an OpenWeather "main" group to a condition.
func Condition(main string) types.WeatherCondition {
	switch strings.ToLower(main) {
	case "clear":
		return types.ConditionClear
	case "clouds", "mist", "fog", "haze":
		return types.ConditionClouds
	case "rain", "drizzle":
		return types.ConditionRain
	case "snow":
		return types.ConditionSnow
	case "thunderstorm", "squall", "tornado":
		return types.ConditionStorm
	default:
		return types.ConditionUnknown
	}
}

// dominant picks the most frequent condition, preferring the more severe
// one on ties.
func dominant(counts map[types.WeatherCondition]int) types.WeatherCondition {
	severity := map[types.WeatherCondition]int{
		types.ConditionUnknown: 0, types.ConditionClear: 1, types.ConditionClouds: 2,
		types.ConditionRain: 3, types.ConditionSnow: 4, types.ConditionStorm: 5,
	}
	conds := make([]types.WeatherCondition, 0, len(counts))
	for c := range counts {
		conds = append(conds, c)
	}
	if len(conds) == 0 {
		return types.ConditionUnknown
	}
	sort.Slice(conds, func(i, j int) bool {
		if counts[conds[i]] != counts[conds[j]] {
			return counts[conds[i]] > counts[conds[j]]
		}
		return severity[conds[i]] > severity[conds[j]]
	})
	return conds[0]
}
