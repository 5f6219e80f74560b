package feedback

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
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

// Submit godoc
// @Summary      Submit feedback
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        feedback body types.FeedbackRequest true "Feedback"
// @Success      201 {object} types.FeedbackResponse
// @Failure      400 {object} api.ErrorBody
// @Router       /feedback [post]
func (h *HandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FeedbackHandler").Start(r.Context(), "Submit", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/feedback"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "Submit"))

	var req types.FeedbackRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Submit(ctx, req)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			api.ValidationErrorResponse(w, r, verr)
			return
		}
		l.ErrorContext(ctx, "Failed to submit feedback", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to store feedback")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// List godoc
// @Summary      List feedback
// @Tags         Feedback
// @Produce      json
// @Param        limit  query int false "Maximum results" default(20)
// @Param        offset query int false "Results to skip" default(0)
// @Success      200 {array}  types.Feedback
// @Failure      401 {object} api.ErrorBody
// @Security     BearerAuth
// @Router       /admin/feedback [get]
func (h *HandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list feedback")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

// Summary godoc
// @Summary      Feedback statistics
// @Tags         Feedback
// @Produce      json
// @Success      200 {object} types.FeedbackSummary
// @Failure      401 {object} api.ErrorBody
// @Security     BearerAuth
// @Router       /admin/feedback/summary [get]
func (h *HandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to summarise feedback")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, summary)
}
