package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/genai"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/crew"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/feedback"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/guide"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/health"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-itinerary-planner/internal/router"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const adminSecret = "e2e-secret"

var paris = types.Coordinates{Lat: 48.8566, Lon: 2.3522, DisplayName: "Paris, France"}

func rating(v float64) *float64 { return &v }

func parisPlaces() []types.Candidate {
	return []types.Candidate{
		{Name: "Louvre Museum", Category: "museum", Lat: 48.8606, Lon: 2.3376, Rating: rating(4.7), EstStayMin: 180, Description: "history and art"},
		{Name: "Notre-Dame Cathedral", Category: "landmark", Lat: 48.8530, Lon: 2.3499, Rating: rating(4.8), EstStayMin: 60, Description: "gothic history"},
		{Name: "Musée de Cluny", Category: "museum", Lat: 48.8505, Lon: 2.3440, Rating: rating(4.5), EstStayMin: 90, Description: "medieval history"},
		{Name: "Marché des Enfants Rouges", Category: "food", Lat: 48.8629, Lon: 2.3619, Rating: rating(4.4), EstStayMin: 60, Description: "covered food market"},
		{Name: "Rue Cler", Category: "food", Lat: 48.8556, Lon: 2.3060, Rating: rating(4.3), EstStayMin: 60, Description: "food street"},
		{Name: "Panthéon", Category: "landmark", Lat: 48.8462, Lon: 2.3464, Rating: rating(4.6), EstStayMin: 60, Description: "history"},
		{Name: "Sainte-Chapelle", Category: "landmark", Lat: 48.8554, Lon: 2.3450, Rating: rating(4.8), EstStayMin: 45, Description: "history and stained glass"},
	}
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, destination string) (types.Coordinates, error) {
	args := m.Called(ctx, destination)
	return args.Get(0).(types.Coordinates), args.Error(1)
}

type MockWeather struct{ mock.Mock }

func (m *MockWeather) Daily(ctx context.Context, coords types.Coordinates, dates []string) ([]types.DailyWeather, error) {
	args := m.Called(ctx, coords, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DailyWeather), args.Error(1)
}

type MockPlaces struct{ mock.Mock }

func (m *MockPlaces) Search(ctx context.Context, destination string, coords *types.Coordinates, interests []string, limit int) ([]types.Candidate, error) {
	args := m.Called(ctx, destination, coords, interests, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Candidate), args.Error(1)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

// E2ETestSuite drives the real router over HTTP with mocked external
// providers.
type E2ETestSuite struct {
	suite.Suite
	logger    *slog.Logger
	geocoder  *MockGeocoder
	weather   *MockWeather
	places    *MockPlaces
	generator *MockGenerator
	server    *httptest.Server
	client    *http.Client
}

func (s *E2ETestSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.client = &http.Client{Timeout: 30 * time.Second}
}

func (s *E2ETestSuite) SetupTest() {
	s.geocoder = new(MockGeocoder)
	s.weather = new(MockWeather)
	s.places = new(MockPlaces)
	s.generator = new(MockGenerator)

	s.geocoder.On("Geocode", mock.Anything, "Paris").Return(paris, nil)
	s.geocoder.On("Geocode", mock.Anything, "Atlantis").Return(types.Coordinates{}, types.NewFetchError("geocoder", types.ErrNotFound))
	s.weather.On("Daily", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("weather down"))

	deps := itinerary.Collaborators{Geocoder: s.geocoder, Weather: s.weather, Places: s.places}
	g := guide.New()
	heuristic := itinerary.NewHeuristic(deps, g, s.logger)
	agent := itinerary.NewAgent(crew.New(s.generator, s.geocoder, nil, nil, g, s.logger), deps, s.logger)
	svc := itinerary.NewServiceImpl(heuristic, agent, deps, g, "en_US", s.logger)

	h := router.SetupRouter(&router.Config{
		ItineraryHandler:       itinerary.NewHandler(svc, s.logger),
		FeedbackHandler:        feedback.NewHandler(feedback.NewServiceImpl(feedback.NewMemoryRepository(), s.logger), s.logger),
		HealthHandler:          health.NewHandler(health.Info{Service: "itinerary-planner", Version: "test"}, s.logger),
		AuthenticateMiddleware: appMiddleware.NewAuthenticator(adminSecret, s.logger).Authenticate,
	})
	s.server = httptest.NewServer(h)
}

func (s *E2ETestSuite) TearDownTest() {
	s.server.Close()
}

func (s *E2ETestSuite) do(method, path string, body any, header http.Header) (int, []byte) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, r)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, raw
}

func (s *E2ETestSuite) plan(query string, prefs types.UserPreferences) types.PlanResponse {
	status, raw := s.do(http.MethodPost, "/api/v1/plan"+query, prefs, nil)
	s.Require().Equal(http.StatusOK, status, string(raw))
	var resp types.PlanResponse
	s.Require().NoError(json.Unmarshal(raw, &resp))
	return resp
}

func parisPrefs() types.UserPreferences {
	return types.UserPreferences{
		Destination: "Paris",
		StartDate:   "2025-10-01",
		EndDate:     "2025-10-02",
		Interests:   []string{"history", "food"},
		Pace:        types.PaceBalanced,
		BudgetLevel: types.BudgetMid,
		Party:       2,
	}
}

func (s *E2ETestSuite) TestParisItinerary() {
	s.places.On("Search", mock.Anything, "Paris", mock.Anything, []string{"history", "food"}, itinerary.MaxCandidates).
		Return(parisPlaces(), nil)

	resp := s.plan("?mode=graph", parisPrefs())

	s.True(resp.Success)
	s.Equal(itinerary.ModeGraph, resp.Mode)
	it := resp.Itinerary
	s.Require().NotNil(it)
	s.Require().Len(it.Days, 2)
	s.Equal("2025-10-01", it.Days[0].Date)
	s.Equal("2025-10-02", it.Days[1].Date)
	s.Contains(it.Summary, "Paris")
	s.NotEmpty(it.Tips.Etiquette)
	s.NotEmpty(it.Tips.Packing)
	s.NotEmpty(it.Tips.Safety)

	seen := map[string]bool{}
	for _, d := range it.Days {
		places := d.Places()
		s.NotEmpty(places)
		s.Len(d.Transfers, max(len(places)-1, 0))
		for _, p := range places {
			if !p.IsVisit() {
				continue
			}
			s.False(seen[p.Name], "%s scheduled twice", p.Name)
			seen[p.Name] = true
		}
	}
	s.Empty(it.WeatherInfo, "weather is attached only on request")
}

func (s *E2ETestSuite) TestEmptyCandidates() {
	s.places.On("Search", mock.Anything, "Paris", mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Candidate{}, nil)

	prefs := parisPrefs()
	prefs.EndDate = "2025-10-03"
	resp := s.plan("", prefs)

	s.True(resp.Success)
	s.Require().Len(resp.Itinerary.Days, 3)
	for _, d := range resp.Itinerary.Days {
		s.Len(d.Places(), 1)
		s.Empty(d.Transfers)
	}
}

func (s *E2ETestSuite) TestCrewFailureFallsBack() {
	s.places.On("Search", mock.Anything, "Paris", mock.Anything, mock.Anything, mock.Anything).
		Return(parisPlaces(), nil)
	s.generator.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))

	resp := s.plan("?mode=crew&include_weather=true", parisPrefs())

	s.True(resp.Success)
	s.Equal(itinerary.ModeFallback, resp.Mode)
	s.Len(resp.Itinerary.Days, 2)
	s.Require().Len(resp.Itinerary.WeatherInfo, 2)
	s.True(resp.Itinerary.WeatherInfo[0].Demo, "weather outage answered with demo weather")
}

func (s *E2ETestSuite) TestHeuristicIsDeterministic() {
	s.places.On("Search", mock.Anything, "Paris", mock.Anything, mock.Anything, mock.Anything).
		Return(parisPlaces(), nil)

	first := s.plan("", parisPrefs())
	second := s.plan("", parisPrefs())

	a, err := json.Marshal(first.Itinerary.Days)
	s.Require().NoError(err)
	b, err := json.Marshal(second.Itinerary.Days)
	s.Require().NoError(err)
	s.Equal(string(a), string(b))
}

func (s *E2ETestSuite) TestRejectsInvalidRequests() {
	prefs := parisPrefs()
	prefs.EndDate = "2025-09-30"
	status, raw := s.do(http.MethodPost, "/api/v1/plan", prefs, nil)
	s.Equal(http.StatusBadRequest, status)

	var body struct {
		Error      bool               `json:"error"`
		StatusCode int                `json:"status_code"`
		Details    []types.FieldError `json:"details"`
	}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.True(body.Error)
	s.Equal(http.StatusBadRequest, body.StatusCode)
	s.NotEmpty(body.Details)

	unknown := parisPrefs()
	unknown.Destination = "Atlantis"
	status, _ = s.do(http.MethodPost, "/api/v1/plan", unknown, nil)
	s.Equal(http.StatusUnprocessableEntity, status)
}

func (s *E2ETestSuite) TestFeedbackFlow() {
	status, raw := s.do(http.MethodPost, "/api/v1/feedback", types.FeedbackRequest{Satisfaction: 4, Category: "places", Destination: "Paris"}, nil)
	s.Require().Equal(http.StatusCreated, status, string(raw))

	status, _ = s.do(http.MethodGet, "/api/v1/admin/feedback/summary", nil, nil)
	s.Equal(http.StatusUnauthorized, status)

	token, err := appMiddleware.NewAuthenticator(adminSecret, s.logger).Sign(appMiddleware.Claims{
		UserID:           "operator",
		Role:             appMiddleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	s.Require().NoError(err)
	auth := http.Header{"Authorization": []string{"Bearer " + token}}

	status, raw = s.do(http.MethodGet, "/api/v1/admin/feedback/summary", nil, auth)
	s.Require().Equal(http.StatusOK, status)
	var summary types.FeedbackSummary
	s.Require().NoError(json.Unmarshal(raw, &summary))
	s.Equal(1, summary.Count)
	s.Equal(1, summary.ByCategory["places"])
}

func (s *E2ETestSuite) TestStatus() {
	status, raw := s.do(http.MethodGet, "/api/v1/status", nil, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(raw), `"api_keys"`)

	status, _ = s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, status)
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
