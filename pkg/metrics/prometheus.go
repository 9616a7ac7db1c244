// Package metrics provides Prometheus metrics for the evpulse service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Prediction metrics
	predictionRuns    prometheus.Counter
	predictionRows    prometheus.Counter
	predictionErrors  *prometheus.CounterVec
	inferenceLatency  prometheus.Histogram
	lastAvgRULDays    prometheus.Gauge
	lastAvgFailure    prometheus.Gauge
	warrantyDecisions *prometheus.CounterVec

	// Artifact metrics
	artifactLoads *prometheus.CounterVec

	// Ingest metrics
	csvUploads      prometheus.Counter
	csvUploadErrors prometheus.Counter
	csvRowsIngested prometheus.Counter
	uploadBatchRows prometheus.Gauge

	// Live feed metrics
	feedSamples     prometheus.Counter
	feedRunning     prometheus.Gauge
	feedSubscribers prometheus.Gauge

	// Run history metrics
	runHistorySize prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global manager registered on a custom registry so the default Go
// collectors do not leak into /healthz.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // custom metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "evpulse",
		subsystem:        "maintenance",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictionRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_runs_total",
		Help:      "Total number of prediction runs executed",
	})

	m.predictionRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_rows_total",
		Help:      "Total number of rows scored across all prediction runs",
	})

	m.predictionErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_errors_total",
		Help:      "Total number of failed prediction runs by cause",
	}, []string{"cause"})

	m.inferenceLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inference_latency_ms",
		Help:      "Latency of model inference over a batch in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastAvgRULDays = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_avg_rul_days",
		Help:      "Average remaining useful life of the most recent run in days",
	})

	m.lastAvgFailure = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_avg_failure_probability",
		Help:      "Average failure probability of the most recent run",
	})

	m.warrantyDecisions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warranty_decisions_total",
		Help:      "Total warranty claim decisions by outcome",
	}, []string{"decision"})

	m.artifactLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifact_loads_total",
		Help:      "Model artifact load attempts by model and status",
	}, []string{"model", "status"})

	m.csvUploads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "csv_uploads_total",
		Help:      "Total number of accepted CSV uploads",
	})

	m.csvUploadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "csv_upload_errors_total",
		Help:      "Total number of rejected CSV uploads",
	})

	m.csvRowsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "csv_rows_ingested_total",
		Help:      "Total number of sensor rows parsed from CSV uploads",
	})

	m.uploadBatchRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_batch_rows",
		Help:      "Rows currently held in the stored upload batch",
	})

	m.feedSamples = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_samples_total",
		Help:      "Total number of synthetic live samples generated",
	})

	m.feedRunning = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_running",
		Help:      "Whether the live sensor feed is currently enabled (1) or not (0)",
	})

	m.feedSubscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_subscribers",
		Help:      "Number of connected live feed subscribers",
	})

	m.runHistorySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_history_size",
		Help:      "Number of prediction runs retained in history",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers operating on the global manager.

// RecordPredictionRun increments the prediction run counter.
func RecordPredictionRun(rows int) {
	globalManager.predictionRuns.Inc()
	globalManager.predictionRows.Add(float64(rows))
}

// RecordPredictionError increments the failed-run counter for a cause.
func RecordPredictionError(cause string) {
	globalManager.predictionErrors.WithLabelValues(cause).Inc()
}

// RecordInferenceLatency records batch inference latency in milliseconds.
func RecordInferenceLatency(latencyMs float64) {
	globalManager.inferenceLatency.Observe(latencyMs)
}

// UpdateLastRunAverages publishes the most recent run's batch averages.
func UpdateLastRunAverages(avgRULDays, avgFailure float64) {
	globalManager.lastAvgRULDays.Set(avgRULDays)
	globalManager.lastAvgFailure.Set(avgFailure)
}

// RecordWarrantyDecision increments the decision counter for an outcome.
func RecordWarrantyDecision(decision string) {
	globalManager.warrantyDecisions.WithLabelValues(decision).Inc()
}

// RecordArtifactLoad records a model artifact load attempt.
func RecordArtifactLoad(model, status string) {
	globalManager.artifactLoads.WithLabelValues(model, status).Inc()
}

// RecordCSVUpload records an accepted CSV upload and its row count.
func RecordCSVUpload(rows int) {
	globalManager.csvUploads.Inc()
	globalManager.csvRowsIngested.Add(float64(rows))
}

// RecordCSVUploadError records a rejected CSV upload.
func RecordCSVUploadError() {
	globalManager.csvUploadErrors.Inc()
}

// UpdateUploadBatchRows publishes the stored upload batch size.
func UpdateUploadBatchRows(rows int) {
	globalManager.uploadBatchRows.Set(float64(rows))
}

// RecordFeedSample increments the synthetic sample counter.
func RecordFeedSample() {
	globalManager.feedSamples.Inc()
}

// UpdateFeedRunning publishes the feed toggle state.
func UpdateFeedRunning(running bool) {
	if running {
		globalManager.feedRunning.Set(1)
	} else {
		globalManager.feedRunning.Set(0)
	}
}

// UpdateFeedSubscribers publishes the subscriber count.
func UpdateFeedSubscribers(count int) {
	globalManager.feedSubscribers.Set(float64(count))
}

// UpdateRunHistorySize publishes the retained run count.
func UpdateRunHistorySize(count int) {
	globalManager.runHistorySize.Set(float64(count))
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage publishes allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount publishes the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records average GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
