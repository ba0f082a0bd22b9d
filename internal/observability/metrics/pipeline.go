package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// PipelineMetrics tracks question pipeline runs on a private registry.
type PipelineMetrics struct {
	registry *prometheus.Registry
	service  string

	classificationsTotal *prometheus.CounterVec
	retrievalDuration    *prometheus.HistogramVec
	retrievedPassages    *prometheus.HistogramVec
	answersTotal         *prometheus.CounterVec
	failuresTotal        *prometheus.CounterVec
	runDuration          *prometheus.HistogramVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	classificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vra",
			Subsystem: "pipeline",
			Name:      "classifications_total",
			Help:      "Total classified questions by resulting type.",
		},
		[]string{"service", "question_type"},
	)
	retrievalDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vra",
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "Passage retrieval duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	retrievedPassages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vra",
			Subsystem: "retrieval",
			Name:      "passages",
			Help:      "Distribution of retrieved passages per run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)
	answersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vra",
			Subsystem: "pipeline",
			Name:      "answers_total",
			Help:      "Total produced answers by grounding.",
		},
		[]string{"service", "grounded"},
	)
	failuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vra",
			Subsystem: "pipeline",
			Name:      "failures_total",
			Help:      "Total failed runs by error kind.",
		},
		[]string{"service", "kind"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vra",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "End-to-end pipeline run duration in seconds by terminal state.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "state"},
	)

	registry.MustRegister(
		classificationsTotal,
		retrievalDuration,
		retrievedPassages,
		answersTotal,
		failuresTotal,
		runDuration,
	)

	return &PipelineMetrics{
		registry:             registry,
		service:              service,
		classificationsTotal: classificationsTotal,
		retrievalDuration:    retrievalDuration,
		retrievedPassages:    retrievedPassages,
		answersTotal:         answersTotal,
		failuresTotal:        failuresTotal,
		runDuration:          runDuration,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) RecordClassification(questionType domain.QuestionType) {
	m.classificationsTotal.WithLabelValues(m.service, string(questionType)).Inc()
}

func (m *PipelineMetrics) RecordRetrieval(passageCount int, duration time.Duration) {
	m.retrievalDuration.WithLabelValues(m.service).Observe(duration.Seconds())
	m.retrievedPassages.WithLabelValues(m.service).Observe(float64(passageCount))
}

func (m *PipelineMetrics) RecordAnswer(grounded bool) {
	label := "false"
	if grounded {
		label = "true"
	}
	m.answersTotal.WithLabelValues(m.service, label).Inc()
}

func (m *PipelineMetrics) RecordFailure(err error) {
	m.failuresTotal.WithLabelValues(m.service, domain.ErrorKind(err)).Inc()
}

func (m *PipelineMetrics) RecordRun(state domain.PipelineState, duration time.Duration) {
	m.runDuration.WithLabelValues(m.service, string(state)).Observe(duration.Seconds())
}
