package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

type Repository interface {
	Save(ctx context.Context, f types.Feedback) error
	List(ctx context.Context, limit, offset int) ([]types.Feedback, error)
	Summary(ctx context.Context) (types.FeedbackSummary, error)
}

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db     DB
	logger *slog.Logger
}

func NewPostgresRepository(db DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func observe(ctx context.Context, query string, started time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("query", query))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(started).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *PostgresRepository) Save(ctx context.Context, f types.Feedback) (err error) {
	defer func(started time.Time) { observe(ctx, "feedback.save", started, err) }(time.Now())

	query := `
        INSERT INTO feedback (
            id, satisfaction, comment, category, mode, destination, would_recommend, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	if _, err = r.db.Exec(ctx, query,
		f.ID, f.Satisfaction, f.Comment, f.Category, f.Mode, f.Destination, f.WouldRecommend, f.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) (out []types.Feedback, err error) {
	defer func(started time.Time) { observe(ctx, "feedback.list", started, err) }(time.Now())

	query := `
        SELECT id, satisfaction, comment, category, mode, destination, would_recommend, created_at
        FROM feedback
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	out = []types.Feedback{}
	for rows.Next() {
		var f types.Feedback
		if err = rows.Scan(&f.ID, &f.Satisfaction, &f.Comment, &f.Category, &f.Mode, &f.Destination, &f.WouldRecommend, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Summary(ctx context.Context) (s types.FeedbackSummary, err error) {
	defer func(started time.Time) { observe(ctx, "feedback.summary", started, err) }(time.Now())

	query := `
        SELECT count(*),
               coalesce(avg(satisfaction), 0)::float8,
               coalesce(avg(CASE WHEN would_recommend THEN 1.0 WHEN NOT would_recommend THEN 0.0 END), 0)::float8
        FROM feedback
    `
	if err = r.db.QueryRow(ctx, query).Scan(&s.Count, &s.AverageSatisfaction, &s.RecommendRate); err != nil {
		return s, fmt.Errorf("failed to summarise feedback: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT category, count(*) FROM feedback GROUP BY category`)
	if err != nil {
		return s, fmt.Errorf("failed to count feedback categories: %w", err)
	}
	defer rows.Close()

	s.ByCategory = map[string]int{}
	for rows.Next() {
		var category string
		var n int
		if err = rows.Scan(&category, &n); err != nil {
			return s, fmt.Errorf("failed to scan feedback category: %w", err)
		}
		s.ByCategory[category] = n
	}
	if err = rows.Err(); err != nil {
		return s, fmt.Errorf("failed to read feedback categories: %w", err)
	}
	return s, nil
}

// MemoryRepository keeps feedback in process. It is used when Postgres is
// disabled.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []types.Feedback
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, f types.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, f)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]types.Feedback, error) {
	r.mu.RLock()
	sorted := append([]types.Feedback(nil), r.items...)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if offset >= len(sorted) {
		return []types.Feedback{}, nil
	}
	sorted = sorted[offset:]
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *MemoryRepository) Summary(_ context.Context) (types.FeedbackSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := types.FeedbackSummary{Count: len(r.items), ByCategory: map[string]int{}}
	if len(r.items) == 0 {
		return s, nil
	}
	total, answered, yes := 0, 0, 0
	for _, f := range r.items {
		total += f.Satisfaction
		s.ByCategory[f.Category]++
		if f.WouldRecommend != nil {
			answered++
			if *f.WouldRecommend {
				yes++
			}
		}
	}
	s.AverageSatisfaction = float64(total) / float64(len(r.items))
	if answered > 0 {
		s.RecommendRate = float64(yes) / float64(answered)
	}
	return s, nil
}
