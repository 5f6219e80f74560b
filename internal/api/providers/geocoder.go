package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ProviderGeocoder    = "geocoder"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	nominatimRatePerSec = 1
)

type Geocoder interface {
	Geocode(ctx context.Context, destination string) (types.Coordinates, error)
}

// NominatimGeocoder queries OpenStreetMap Nominatim. The public instance
// allows one request per second, which the limiter enforces.
type NominatimGeocoder struct {
	http    *httpClient
	baseURL string
	limiter *rate.Limiter
}

var _ Geocoder = (*NominatimGeocoder)(nil)

func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &NominatimGeocoder{
		http:    newHTTPClient(client, timeout, userAgent, logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(nominatimRatePerSec), 1),
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, destination string) (types.Coordinates, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return types.Coordinates{}, types.NewFetchError(ProviderGeocoder, fmt.Errorf("%w: %v", types.ErrUnavailable, err))
	}

	q := url.Values{}
	q.Set("q", destination)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []nominatimResult
	err := g.http.do(ctx, request{
		provider: ProviderGeocoder,
		method:   http.MethodGet,
		url:      g.baseURL + "/search?" + q.Encode(),
	}, &results)
	if err != nil {
		return types.Coordinates{}, err
	}
	if len(results) == 0 {
		return types.Coordinates{}, types.NewFetchError(ProviderGeocoder, types.ErrNotFound)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return types.Coordinates{}, types.NewFetchError(ProviderGeocoder,
			fmt.Errorf("%w: malformed coordinates %q,%q", types.ErrUnavailable, results[0].Lat, results[0].Lon))
	}
	return types.Coordinates{Lat: lat, Lon: lon, DisplayName: results[0].DisplayName}, nil
}
