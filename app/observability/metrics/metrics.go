package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlansTotal             metric.Int64Counter
	PlanDurationSeconds    metric.Float64Histogram
	StrategyFallbacksTotal metric.Int64Counter
	ProviderFallbacksTotal metric.Int64Counter
	CacheHitsTotal         metric.Int64Counter
	CacheMissesTotal       metric.Int64Counter
	FeedbackSubmittedTotal metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Set the provider before the first call.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("ItineraryPlanner")
		m := &AppMetrics{}

		m.PlansTotal = counter(meter, "plans_total", "Itinerary plans completed, by mode and outcome", "{plan}")
		m.PlanDurationSeconds = histogram(meter, "plan_duration_seconds", "Duration of itinerary planning in seconds")
		m.StrategyFallbacksTotal = counter(meter, "strategy_fallbacks_total", "Agent strategy runs replaced by the heuristic strategy", "{fallback}")
		m.ProviderFallbacksTotal = counter(meter, "provider_fallbacks_total", "External data lookups answered by fallback data, by provider", "{fallback}")
		m.CacheHitsTotal = counter(meter, "cache_hits_total", "External data cache hits, by category", "{hit}")
		m.CacheMissesTotal = counter(meter, "cache_misses_total", "External data cache misses, by category", "{miss}")
		m.FeedbackSubmittedTotal = counter(meter, "feedback_submitted_total", "Feedback entries stored", "{feedback}")
		m.DbQueryDurationSeconds = histogram(meter, "db_query_duration_seconds", "Duration of database queries in seconds")
		m.DbQueryErrorsTotal = counter(meter, "db_query_errors_total", "Total number of database query errors", "{error}")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

func counter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func histogram(meter metric.Meter, name, description string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}

// Get returns the instruments, creating them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
