package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webapp"

// Recorder owns every collector of the service. Collectors are registered on
// the registry given to NewRecorder so tests can use a fresh one.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	rejections       *prometheus.CounterVec
	methodNotAllowed prometheus.Counter

	storageDuration *prometheus.HistogramVec
	storageErrors   *prometheus.CounterVec
	dbDuration      *prometheus.HistogramVec
	dbErrors        *prometheus.CounterVec

	consistencyEvents *prometheus.CounterVec
}

// NewRecorder registers the service collectors, plus the go and process
// collectors, on reg
func NewRecorder(reg *prometheus.Registry) *Recorder {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_rejections_total",
			Help:      "Requests rejected by the validation gate, by rule.",
		}, []string{"reason"}),
		methodNotAllowed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "method_not_allowed_total",
			Help:      "Requests answered with 405.",
		}),
		storageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_operation_duration_seconds",
			Help:      "Object store call latency by operation.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		storageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operation_errors_total",
			Help:      "Failed object store calls by operation.",
		}, []string{"operation"}),
		dbDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Metadata store call latency by table and operation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"table", "operation"}),
		dbErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_operation_errors_total",
			Help:      "Failed metadata store calls by table and operation.",
		}, []string{"table", "operation"}),
		consistencyEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consistency_events_total",
			Help:      "Store/metadata inconsistencies detected, by type.",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Rejected counts a request turned away by the validation gate
func (r *Recorder) Rejected(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}

// MethodNotAllowed counts a 405 answer
func (r *Recorder) MethodNotAllowed() {
	r.methodNotAllowed.Inc()
}
