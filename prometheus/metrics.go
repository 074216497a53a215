package prometheus

import (
	"time"

	"github.com/galactly/onboarding-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Answer submission metrics
	AnswerSubmissionsCounter prometheus.CounterVec

	// Acknowledgement source metrics (research vs vertex_ai)
	AcknowledgementsCounter prometheus.CounterVec

	// LLM call metrics
	LLMRequestsCounter  prometheus.Counter
	LLMFallbacksCounter prometheus.Counter

	// Onboarding completion metrics
	OnboardingCompletedCounter prometheus.Counter

	// Validation failure metrics
	ValidationErrorsCounter prometheus.Counter

	// Document store operation metrics
	StoreOperationDuration prometheus.HistogramVec

	// Onboarding endpoint operation metrics
	OnboardingOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	AnswerSubmissionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_answer_submissions_total",
			Help: "Total number of onboarding answers submitted, by question",
		},
		[]string{"question_id"},
	)

	AcknowledgementsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_acknowledgements_total",
			Help: "Total number of acknowledgements attached to answers, by source",
		},
		[]string{"source"},
	)

	LLMRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_llm_requests_total",
			Help: "Total number of generative model calls",
		},
	)

	LLMFallbacksCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_llm_fallbacks_total",
			Help: "Total number of generative model failures answered with the fallback text",
		},
	)

	OnboardingCompletedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_completed_total",
			Help: "Total number of suppliers that reached full onboarding completion",
		},
	)

	ValidationErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_validation_errors_total",
			Help: "Total number of rejected submit-answer requests",
		},
	)

	StoreOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	OnboardingOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of onboarding operations",
		},
		[]string{"operation"},
	)
}

// TrackStoreOperation returns a function that records the duration of a store operation
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordOnboardingOperation increments the counter for onboarding operations
func RecordOnboardingOperation(operation string) {
	OnboardingOperationsCounter.WithLabelValues(operation).Inc()
}
