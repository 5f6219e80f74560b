package cache

import (
	"context"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api/providers"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// CachedGeocoder memoises a Geocoder.
type CachedGeocoder struct {
	next  providers.Geocoder
	cache *Manager
}

var _ providers.Geocoder = (*CachedGeocoder)(nil)

func NewCachedGeocoder(next providers.Geocoder, m *Manager) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: m}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, destination string) (types.Coordinates, error) {
	return Load(ctx, c.cache, Geocode, Key(Geocode, destination), func(ctx context.Context) (types.Coordinates, error) {
		return c.next.Geocode(ctx, destination)
	})
}

type CachedWeather struct {
	next  providers.WeatherProvider
	cache *Manager
}

var _ providers.WeatherProvider = (*CachedWeather)(nil)

func NewCachedWeather(next providers.WeatherProvider, m *Manager) *CachedWeather {
	return &CachedWeather{next: next, cache: m}
}

func (c *CachedWeather) Daily(ctx context.Context, coords types.Coordinates, dates []string) ([]types.DailyWeather, error) {
	return Load(ctx, c.cache, Weather, Key(Weather, coords.Lat, coords.Lon, dates), func(ctx context.Context) ([]types.DailyWeather, error) {
		return c.next.Daily(ctx, coords, dates)
	})
}

type CachedPlaces struct {
	next  providers.PlaceProvider
	cache *Manager
}

var _ providers.PlaceProvider = (*CachedPlaces)(nil)

func NewCachedPlaces(next providers.PlaceProvider, m *Manager) *CachedPlaces {
	return &CachedPlaces{next: next, cache: m}
}

func (c *CachedPlaces) Search(ctx context.Context, destination string, coords *types.Coordinates, interests []string, limit int) ([]types.Candidate, error) {
	key := Key(Places, destination, coords, interests, limit)
	return Load(ctx, c.cache, Places, key, func(ctx context.Context) ([]types.Candidate, error) {
		return c.next.Search(ctx, destination, coords, interests, limit)
	})
}

type CachedWiki struct {
	next  providers.WikiProvider
	cache *Manager
}

var _ providers.WikiProvider = (*CachedWiki)(nil)

func NewCachedWiki(next providers.WikiProvider, m *Manager) *CachedWiki {
	return &CachedWiki{next: next, cache: m}
}

func (c *CachedWiki) Summary(ctx context.Context, title, lang string) (types.DestinationInfo, error) {
	return Load(ctx, c.cache, Wiki, Key(Wiki, title, lang), func(ctx context.Context) (types.DestinationInfo, error) {
		return c.next.Summary(ctx, title, lang)
	})
}
