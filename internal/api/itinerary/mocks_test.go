package itinerary

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type MockStrategy struct {
	mock.Mock
	name string
}

func (m *MockStrategy) Name() string { return m.name }

func (m *MockStrategy) Plan(ctx context.Context, prefs types.UserPreferences, opts types.PlanOptions) (*types.Itinerary, error) {
	args := m.Called(ctx, prefs, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, destination string) (types.Coordinates, error) {
	args := m.Called(ctx, destination)
	return args.Get(0).(types.Coordinates), args.Error(1)
}

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Daily(ctx context.Context, coords types.Coordinates, dates []string) ([]types.DailyWeather, error) {
	args := m.Called(ctx, coords, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DailyWeather), args.Error(1)
}

type MockPlaces struct {
	mock.Mock
}

func (m *MockPlaces) Search(ctx context.Context, destination string, coords *types.Coordinates, interests []string, limit int) ([]types.Candidate, error) {
	args := m.Called(ctx, destination, coords, interests, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Candidate), args.Error(1)
}

type MockWiki struct {
	mock.Mock
}

func (m *MockWiki) Summary(ctx context.Context, title, lang string) (types.DestinationInfo, error) {
	args := m.Called(ctx, title, lang)
	return args.Get(0).(types.DestinationInfo), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Plan(ctx context.Context, prefs types.UserPreferences, mode string, opts types.PlanOptions) (*types.PlanResponse, error) {
	args := m.Called(ctx, prefs, mode, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlanResponse), args.Error(1)
}

func (m *MockService) Weather(ctx context.Context, destination string, dates []string) ([]types.DailyWeather, error) {
	args := m.Called(ctx, destination, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DailyWeather), args.Error(1)
}

func (m *MockService) Places(ctx context.Context, destination string, interests []string, limit int) ([]types.Candidate, error) {
	args := m.Called(ctx, destination, interests, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Candidate), args.Error(1)
}

func (m *MockService) LocalInfo(ctx context.Context, destination, lang string) (*types.DestinationInfo, error) {
	args := m.Called(ctx, destination, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DestinationInfo), args.Error(1)
}
