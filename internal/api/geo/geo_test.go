package geo

import (
	"testing"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("zero for same point", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(48.8584, 2.2945, 48.8584, 2.2945))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := Distance(48.8584, 2.2945, 48.8606, 2.3376)
		ba := Distance(48.8606, 2.3376, 48.8584, 2.2945)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("eiffel tower to louvre", func(t *testing.T) {
		assert.InDelta(t, 3.16, Distance(48.8584, 2.2945, 48.8606, 2.3376), 0.05)
	})

	t.Run("paris to london", func(t *testing.T) {
		assert.InDelta(t, 343.5, Distance(48.8566, 2.3522, 51.5074, -0.1278), 1.0)
	})
}

func TestWalkMinutes(t *testing.T) {
	assert.Equal(t, 1, WalkMinutes(0))
	assert.Equal(t, 1, WalkMinutes(0.01))
	assert.Equal(t, 15, WalkMinutes(1))
	assert.Equal(t, 47, WalkMinutes(3.16))

	prev := 0
	for km := 0.0; km < 20; km += 0.37 {
		m := WalkMinutes(km)
		assert.GreaterOrEqual(t, m, prev)
		assert.GreaterOrEqual(t, m, 1)
		prev = m
	}
}

func TestTravelMinutes(t *testing.T) {
	assert.Equal(t, 24, TravelMinutes(10, SpeedFor(types.TransportTransit)))
	assert.Equal(t, 15, TravelMinutes(10, SpeedFor(types.TransportDriving)))
	assert.Equal(t, WalkMinutes(2), TravelMinutes(2, 0))
	assert.Equal(t, WalkSpeedKmph, SpeedFor("hover"))
}

func TestTransfers(t *testing.T) {
	places := []types.Place{
		{Name: "Eiffel Tower", Lat: 48.8584, Lon: 2.2945},
		{Name: "Louvre", Lat: 48.8606, Lon: 2.3376},
		{Name: "Notre-Dame", Lat: 48.8530, Lon: 2.3499},
	}

	got := Transfers(places, types.TransportWalking)
	assert.Len(t, got, 2)
	assert.Equal(t, "Eiffel Tower", got[0].FromPlace)
	assert.Equal(t, "Louvre", got[0].ToPlace)
	assert.Equal(t, 3.16, got[0].DistanceKm)
	assert.Equal(t, types.TransferWalk, got[0].Mode)
	assert.Equal(t, "Notre-Dame", got[1].ToPlace)

	assert.Empty(t, Transfers(places[:1], types.TransportWalking))
	assert.NotNil(t, Transfers(nil, types.TransportWalking))
}
