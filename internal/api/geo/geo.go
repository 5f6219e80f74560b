// Package geo estimates distances and travel times between coordinates.
package geo

import (
	"math"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	earthRadiusKm = 6371
	WalkSpeedKmph = 4.0
)

// Distance returns the great-circle distance in kilometres (haversine).
// Inputs are not validated.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Between is Distance for two places.
func Between(a, b types.Place) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// WalkMinutes converts a distance to whole walking minutes, never below one.
func WalkMinutes(km float64) int {
	return TravelMinutes(km, WalkSpeedKmph)
}

// TravelMinutes is WalkMinutes for an arbitrary speed. A non-positive speed
// falls back to walking speed.
func TravelMinutes(km, speedKmph float64) int {
	if speedKmph <= 0 {
		speedKmph = WalkSpeedKmph
	}
	m := int(math.Floor(km / speedKmph * 60))
	if m < 1 {
		return 1
	}
	return m
}

// SpeedFor returns the average speed for a transport mode in km/h.
func SpeedFor(mode types.TransportMode) float64 {
	switch mode {
	case types.TransportBicycling:
		return 15
	case types.TransportTransit:
		return 25
	case types.TransportDriving:
		return 40
	default:
		return WalkSpeedKmph
	}
}

// RoundKm rounds to two decimals.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// Transfer builds the transfer between two consecutive places.
func Transfer(from, to types.Place, mode types.TransportMode) types.Transfer {
	km := Between(from, to)
	return types.Transfer{
		FromPlace:  from.Name,
		ToPlace:    to.Name,
		TravelMin:  TravelMinutes(km, SpeedFor(mode)),
		DistanceKm: RoundKm(km),
		Mode:       mode.TransferMode(),
	}
}

// Transfers connects every consecutive pair of places.
func Transfers(places []types.Place, mode types.TransportMode) []types.Transfer {
	if len(places) < 2 {
		return []types.Transfer{}
	}
	out := make([]types.Transfer, 0, len(places)-1)
	for i := 0; i < len(places)-1; i++ {
		out = append(out, Transfer(places[i], places[i+1], mode))
	}
	return out
}
