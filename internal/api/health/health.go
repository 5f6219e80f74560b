// Package health reports liveness and which external providers are
// configured.
package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api"
)

// APIKeys reports the presence of each provider credential, never its value.
type APIKeys struct {
	LLM     bool `json:"llm"`
	Weather bool `json:"weather"`
	Maps    bool `json:"maps"`
	Places  bool `json:"places"`
	Search  bool `json:"search"`
}

type Features struct {
	CrewMode     bool   `json:"crew_mode"`
	LiveWeather  bool   `json:"live_weather"`
	LivePlaces   bool   `json:"live_places"`
	WebSearch    bool   `json:"web_search"`
	CacheBackend string `json:"cache_backend"`
}

type Info struct {
	Service     string
	Version     string
	Environment string
	APIKeys     APIKeys
	Features    Features
}

type Liveness struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type Status struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	APIKeys     APIKeys   `json:"api_keys"`
	Features    Features  `json:"features"`
	Timestamp   time.Time `json:"timestamp"`
}

type HandlerImpl struct {
	info   Info
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(info Info, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{info: info, logger: logger, now: time.Now}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200 {object} Liveness
// @Router       /health [get]
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, Liveness{
		Status:    "healthy",
		Service:   h.info.Service,
		Version:   h.info.Version,
		Timestamp: h.now().UTC(),
	})
}

// Status godoc
// @Summary      Provider configuration
// @Description  Reports which provider credentials are present and the features they enable.
// @Tags         Health
// @Produce      json
// @Success      200 {object} Status
// @Router       /status [get]
func (h *HandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "status requested", slog.Bool("crew_mode", h.info.Features.CrewMode))
	api.WriteJSONResponse(w, r, http.StatusOK, Status{
		Status:      "operational",
		Environment: h.info.Environment,
		Version:     h.info.Version,
		APIKeys:     h.info.APIKeys,
		Features:    h.info.Features,
		Timestamp:   h.now().UTC(),
	})
}
