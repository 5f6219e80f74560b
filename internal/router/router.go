package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/go-itinerary-planner/app/middleware"
	_ "github.com/FACorreiaa/go-itinerary-planner/docs"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/feedback"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/health"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
)

// Config contains the handlers and middleware the routes need.
// RateLimit may be nil.
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	FeedbackHandler  *feedback.HandlerImpl
	HealthHandler    *health.HandlerImpl

	AuthenticateMiddleware func(http.Handler) http.Handler
	RateLimit              func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter builds the application routes. Server-wide middleware such
// as request ids and the recoverer is applied by the caller.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.HealthHandler.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}

		r.Get("/status", cfg.HealthHandler.Status)

		r.Post("/plan", cfg.ItineraryHandler.Plan)
		r.Post("/plan/pdf", cfg.ItineraryHandler.PlanPDF)
		r.Get("/weather/{destination}", cfg.ItineraryHandler.Weather)
		r.Get("/places/{destination}", cfg.ItineraryHandler.Places)
		r.Get("/local-info/{destination}", cfg.ItineraryHandler.LocalInfo)

		r.Post("/feedback", cfg.FeedbackHandler.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Use(appMiddleware.RequireRole(appMiddleware.RoleAdmin))
			r.Get("/feedback", cfg.FeedbackHandler.List)
			r.Get("/feedback/summary", cfg.FeedbackHandler.Summary)
		})
	})

	return r
}
