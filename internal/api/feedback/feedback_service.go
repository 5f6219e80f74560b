package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var _ Service = (*ServiceImpl)(nil)

// Service records user feedback. Feedback never influences planning.
type Service interface {
	Submit(ctx context.Context, req types.FeedbackRequest) (*types.FeedbackResponse, error)
	List(ctx context.Context, limit, offset int) ([]types.Feedback, error)
	Summary(ctx context.Context) (types.FeedbackSummary, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger, now: time.Now}
}

func (s *ServiceImpl) Submit(ctx context.Context, req types.FeedbackRequest) (*types.FeedbackResponse, error) {
	ctx, span := otel.Tracer("FeedbackService").Start(ctx, "Submit")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid feedback")
		return nil, err
	}
	req = req.Normalised()

	f := types.Feedback{
		ID:             uuid.New(),
		Satisfaction:   req.Satisfaction,
		Comment:        req.Comment,
		Category:       req.Category,
		Mode:           req.Mode,
		Destination:    req.Destination,
		WouldRecommend: req.WouldRecommend,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Save(ctx, f); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		s.logger.ErrorContext(ctx, "failed to save feedback", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	metrics.Get().FeedbackSubmittedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("category", f.Category)))
	span.SetAttributes(attribute.String("feedback.id", f.ID.String()))
	s.logger.InfoContext(ctx, "feedback stored", slog.String("id", f.ID.String()), slog.Int("satisfaction", f.Satisfaction))

	return &types.FeedbackResponse{
		FeedbackID: f.ID,
		Message:    "Thank you for your feedback",
		Timestamp:  f.CreatedAt,
	}, nil
}

// List returns feedback newest first.
func (s *ServiceImpl) List(ctx context.Context, limit, offset int) ([]types.Feedback, error) {
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	offset = max(offset, 0)
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list feedback", slog.Any("error", err))
		return nil, err
	}
	return items, nil
}

func (s *ServiceImpl) Summary(ctx context.Context) (types.FeedbackSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to summarise feedback", slog.Any("error", err))
		return types.FeedbackSummary{}, err
	}
	return summary, nil
}
