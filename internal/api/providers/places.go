package providers

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	ProviderPlaces       = "places"
	DefaultFoursquareURL = "https://api.foursquare.com/v3"
	foursquareFields     = "name,geocodes,categories,location,description,rating,price,website"
)

type PlaceProvider interface {
	Search(ctx context.Context, destination string, coords *types.Coordinates, interests []string, limit int) ([]types.Candidate, error)
}

// Foursquare runs one Places search per interest and merges the results.
type Foursquare struct {
	http    *httpClient
	baseURL string
	apiKey  string
}

var _ PlaceProvider = (*Foursquare)(nil)

func NewFoursquare(client *http.Client, baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Foursquare {
	if baseURL == "" {
		baseURL = DefaultFoursquareURL
	}
	return &Foursquare{
		http:    newHTTPClient(client, timeout, "", logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (f *Foursquare) Configured() bool { return f.apiKey != "" }

type foursquareResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Geocodes struct {
			Main struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"main"`
		} `json:"geocodes"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
		Location struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"location"`
		Description string   `json:"description"`
		Rating      *float64 `json:"rating"`
		Price       *int     `json:"price"`
		Website     string   `json:"website"`
	} `json:"results"`
}

func (f *Foursquare) Search(ctx context.Context, destination string, coords *types.Coordinates, interests []string, limit int) ([]types.Candidate, error) {
	if !f.Configured() {
		return nil, notConfigured(ProviderPlaces)
	}
	if limit <= 0 {
		limit = 15
	}

	seen := make(map[string]bool)
	var out []types.Candidate
	var lastErr error
	for _, interest := range interests {
		q := url.Values{}
		q.Set("query", interest)
		q.Set("limit", fmt.Sprint(limit))
		q.Set("fields", foursquareFields)
		if coords != nil {
			q.Set("ll", fmt.Sprintf("%f,%f", coords.Lat, coords.Lon))
		} else {
			q.Set("near", destination)
		}

		var resp foursquareResponse
		err := f.http.do(ctx, request{
			provider: ProviderPlaces,
			method:   http.MethodGet,
			url:      f.baseURL + "/places/search?" + q.Encode(),
			headers:  map[string]string{"Authorization": f.apiKey},
		}, &resp)
		if err != nil {
			lastErr = err
			continue
		}

		for _, r := range resp.Results {
			key := strings.ToLower(r.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			category := interest
			if len(r.Categories) > 0 {
				category = r.Categories[0].Name
			}
			description := r.Description
			if description == "" {
				description = fmt.Sprintf("%s (%s)", r.Name, interest)
			}
			c := types.Candidate{
				Name:        r.Name,
				Category:    category,
				Lat:         r.Geocodes.Main.Latitude,
				Lon:         r.Geocodes.Main.Longitude,
				Description: description,
				URL:         r.Website,
				Address:     r.Location.FormattedAddress,
				PriceLevel:  r.Price,
			}
			if r.Rating != nil {
				// Foursquare rates out of ten
				rating := *r.Rating / 2
				c.Rating = &rating
			}
			out = append(out, c)
			if len(out) == limit {
				return out, nil
			}
		}
	}

	if len(out) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, types.NewFetchError(ProviderPlaces, types.ErrNotFound)
	}
	return out, nil
}

// Paris centre, the reference point of the static dataset.
const staticLat, staticLon = 48.8566, 2.3522

var staticPlaces = []types.Candidate{
	{Name: "Central Museum", Category: "museum", Lat: 48.8606, Lon: 2.3376, Description: "A world-class museum.", EstStayMin: 120},
	{Name: "City Cathedral", Category: "landmark", Lat: 48.8530, Lon: 2.3499, Description: "Historic cathedral.", EstStayMin: 60},
	{Name: "Riverside Walk", Category: "park", Lat: 48.857, Lon: 2.354, Description: "Scenic riverside promenade.", EstStayMin: 45},
}

// StaticPlaces is the fallback dataset used when no place provider answers.
// Places are shifted around coords when the destination was geocoded, and
// one extra place is generated per interest.
func StaticPlaces(destination string, coords *types.Coordinates, interests []string) []types.Candidate {
	dLat, dLon := 0.0, 0.0
	if coords != nil {
		dLat, dLon = coords.Lat-staticLat, coords.Lon-staticLon
	}

	out := make([]types.Candidate, 0, len(staticPlaces)+len(interests))
	for _, p := range staticPlaces {
		p.Lat, p.Lon = inRange(p.Lat+dLat, p.Lon+dLon)
		out = append(out, p)
	}

	for i, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		offset := float64(i+1) * 0.004
		lat, lon := inRange(staticLat+dLat+offset, staticLon+dLon-offset)
		out = append(out, types.Candidate{
			Name:        fmt.Sprintf("%s %s highlights", destination, interest),
			Category:    strings.ToLower(interest),
			Lat:         lat,
			Lon:         lon,
			Description: fmt.Sprintf("Popular %s spot in %s", strings.ToLower(interest), destination),
			EstStayMin:  90,
		})
	}
	return out
}

// inRange clamps lat to the poles and wraps lon across the antimeridian.
func inRange(lat, lon float64) (float64, float64) {
	lat = max(-90, min(90, lat))
	if lon < -180 || lon > 180 {
		lon = math.Mod(lon+180, 360)
		if lon < 0 {
			lon += 360
		}
		lon -= 180
	}
	return lat, lon
}
