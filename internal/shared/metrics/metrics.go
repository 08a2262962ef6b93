package metrics

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_builder"

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	requestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		},
	)

	generationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "generations_total",
			Help:      "Content generations by operation and result source (model or fallback).",
		},
		[]string{"operation", "source"},
	)

	modelDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "model_duration_seconds",
			Help:      "Latency of model calls in seconds, successful or not.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"operation"},
	)

	panicsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Handler panics recovered, by route.",
		},
		[]string{"path"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveGeneration counts one content result for the operation.
func ObserveGeneration(operation, source string) {
	generationsTotal.WithLabelValues(operation, source).Inc()
}

// ObserveModelDuration records how long a model call took.
func ObserveModelDuration(operation string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	modelDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RegisterDBStats exposes connection pool statistics for db. Registering a
// second pool is a no-op.
func RegisterDBStats(db *sql.DB) error {
	if db == nil {
		return nil
	}
	err := Registry.Register(collectors.NewDBStatsCollector(db, namespace))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// ObservePanic counts a recovered handler panic on the given route.
func ObservePanic(path string) {
	if path == "" {
		path = "unmatched"
	}
	panicsTotal.WithLabelValues(path).Inc()
}

// GinMiddleware records request count, latency and in-flight gauge per route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		requestDuration.With(labels).Observe(time.Since(start).Seconds())
		requestTotal.With(labels).Inc()
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
	return gin.WrapH(h)
}
