package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/feedback"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/health"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
)

func testRouter(secret string) http.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	heuristic := itinerary.NewHeuristic(itinerary.Collaborators{}, nil, logger)
	svc := itinerary.NewServiceImpl(heuristic, nil, itinerary.Collaborators{}, nil, "en_US", logger)

	return SetupRouter(&Config{
		ItineraryHandler:       itinerary.NewHandler(svc, logger),
		FeedbackHandler:        feedback.NewHandler(feedback.NewServiceImpl(feedback.NewMemoryRepository(), logger), logger),
		HealthHandler:          health.NewHandler(health.Info{Service: "itinerary-planner"}, logger),
		AuthenticateMiddleware: appMiddleware.NewAuthenticator(secret, logger).Authenticate,
	})
}

func TestSetupRouter(t *testing.T) {
	h := testRouter("s3cret")

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/v1/status", "", http.StatusOK},
		{http.MethodGet, "/api/v1/places/Paris?interests=art", "", http.StatusOK},
		{http.MethodGet, "/api/v1/weather/Paris?start_date=2024-06-01&end_date=2024-06-02", "", http.StatusOK},
		{http.MethodGet, "/api/v1/local-info/Paris", "", http.StatusOK},
		{http.MethodPost, "/api/v1/plan?mode=astrology", `{"destination":"Paris","start_date":"2024-06-01","end_date":"2024-06-02","interests":["art"]}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/feedback", `{"satisfaction":5,"category":"places"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/admin/feedback", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/admin/feedback/summary", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestSetupRouter_Plan(t *testing.T) {
	h := testRouter("")
	body := `{"destination":"Paris","start_date":"2024-06-01","end_date":"2024-06-03","interests":["art","history"]}`

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/plan?include_weather=true", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mode":"graph"`)
	assert.Contains(t, rr.Body.String(), `"weather_info"`)
}
