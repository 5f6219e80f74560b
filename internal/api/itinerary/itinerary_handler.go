package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-itinerary-planner/internal/api"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{service: service, logger: logger}
}

// planRequest also accepts the enrichment flags in the body. Query
// parameters take precedence.
type planRequest struct {
	types.UserPreferences
	IncludeWeather   *bool `json:"include_weather,omitempty"`
	IncludeLocalInfo *bool `json:"include_local_info,omitempty"`
}

func flag(r *http.Request, key string, body *bool) bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return body != nil && *body
}

func (h *HandlerImpl) plan(w http.ResponseWriter, r *http.Request, handler string) (*types.PlanResponse, bool) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), handler, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(r.URL.Path),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", handler))

	var req planRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	mode := r.URL.Query().Get("mode")
	opts := types.PlanOptions{
		IncludeWeather:   flag(r, "include_weather", req.IncludeWeather),
		IncludeLocalInfo: flag(r, "include_local_info", req.IncludeLocalInfo),
	}
	span.SetAttributes(attribute.String("mode", mode), attribute.String("destination", req.Destination))

	resp, err := h.service.Plan(ctx, req.UserPreferences, mode, opts)
	if err != nil {
		l.ErrorContext(ctx, "Failed to plan itinerary", slog.Any("error", err))
		h.writeError(w, r, err)
		return nil, false
	}
	return resp, true
}

func (h *HandlerImpl) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		api.ValidationErrorResponse(w, r, verr)
	case errors.Is(err, types.ErrUnknownMode):
		api.ErrorResponse(w, r, http.StatusBadRequest, "mode must be one of graph, crew")
	case errors.Is(err, types.ErrDestinationNotFound):
		api.ErrorResponse(w, r, http.StatusUnprocessableEntity, "Destination could not be found")
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to process request")
	}
}

// destination reads the {destination} path parameter, or the query
// parameter of the same name.
func destination(r *http.Request) string {
	if d := chi.URLParam(r, "destination"); d != "" {
		return strings.TrimSpace(d)
	}
	return strings.TrimSpace(r.URL.Query().Get("destination"))
}

// Plan godoc
// @Summary      Plan an itinerary
// @Description  Plans a day-by-day itinerary. The crew mode falls back to the graph mode when the agents fail.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        mode               query string false "graph or crew" default(graph)
// @Param        include_weather    query bool   false "Attach the forecast"
// @Param        include_local_info query bool   false "Attach the encyclopedia summary"
// @Param        preferences        body  types.UserPreferences true "Travel preferences"
// @Success      200 {object} types.PlanResponse
// @Failure      400 {object} api.ErrorBody
// @Failure      422 {object} api.ErrorBody
// @Failure      500 {object} api.ErrorBody
// @Router       /plan [post]
func (h *HandlerImpl) Plan(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.plan(w, r, "Plan")
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// PlanPDF godoc
// @Summary      Plan an itinerary as PDF
// @Tags         Itinerary
// @Accept       json
// @Produce      application/pdf
// @Param        mode        query string false "graph or crew" default(graph)
// @Param        preferences body  types.UserPreferences true "Travel preferences"
// @Success      200 {file} binary
// @Failure      422 {object} api.ErrorBody
// @Router       /plan/pdf [post]
func (h *HandlerImpl) PlanPDF(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.plan(w, r, "PlanPDF")
	if !ok {
		return
	}
	doc, err := RenderPDF(resp.Itinerary)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render pdf", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to render itinerary")
		return
	}
	filename := "itinerary"
	if days := resp.Itinerary.Days; len(days) > 0 {
		filename += "-" + days[0].Date
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// Weather godoc
// @Summary      Forecast for a destination
// @Tags         Data
// @Produce      json
// @Param        destination path  string true "Destination"
// @Param        start_date  query string true "YYYY-MM-DD"
// @Param        end_date    query string true "YYYY-MM-DD"
// @Success      200 {array}  types.DailyWeather
// @Failure      400 {object} api.ErrorBody
// @Router       /weather/{destination} [get]
func (h *HandlerImpl) Weather(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Weather"))
	q := r.URL.Query()

	dest := destination(r)
	if dest == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination is required")
		return
	}
	dates, err := types.DateRange(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	forecast, err := h.service.Weather(ctx, dest, dates)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch weather", slog.Any("error", err))
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, forecast)
}

// Places godoc
// @Summary      Candidate places for a destination
// @Tags         Data
// @Produce      json
// @Param        destination path  string true  "Destination"
// @Param        interests   query string false "Comma separated interests"
// @Param        limit       query int    false "Maximum results" default(20)
// @Success      200 {array}  types.Candidate
// @Failure      422 {object} api.ErrorBody
// @Router       /places/{destination} [get]
func (h *HandlerImpl) Places(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Places"))
	q := r.URL.Query()

	dest := destination(r)
	if dest == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination is required")
		return
	}
	var interests []string
	for _, i := range strings.Split(q.Get("interests"), ",") {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	places, err := h.service.Places(ctx, dest, interests, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch places", slog.Any("error", err))
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// LocalInfo godoc
// @Summary      Encyclopedia summary of a destination
// @Tags         Data
// @Produce      json
// @Param        destination path  string true  "Destination"
// @Param        language    query string false "Language code" default(en)
// @Success      200 {object} types.DestinationInfo
// @Router       /local-info/{destination} [get]
func (h *HandlerImpl) LocalInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dest := destination(r)
	if dest == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination is required")
		return
	}
	lang := r.URL.Query().Get("language")
	if lang == "" {
		lang = r.URL.Query().Get("lang")
	}

	info, err := h.service.LocalInfo(ctx, dest, lang)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to fetch local info", slog.Any("error", err))
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, info)
}
