package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	tradesSaved    *prometheus.CounterVec
	derivations    *prometheus.CounterVec
	reportsTotal   prometheus.Counter
	reportDuration prometheus.Histogram
	reportTrades   prometheus.Histogram
	archivesTotal  *prometheus.CounterVec
	importsTotal   *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.tradesSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_trades_saved_total",
			Help: "Total number of trade writes",
		},
		[]string{"op", "result"},
	)
	r.derivations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_derivations_total",
			Help: "Total number of trade derivations by outcome",
		},
		[]string{"outcome"},
	)
	r.reportsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tradejournal_reports_total",
			Help: "Total number of analytics reports built",
		},
	)
	r.reportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tradejournal_report_duration_seconds",
			Help:    "Analytics report build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.reportTrades = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tradejournal_report_trades",
			Help:    "Number of trades per analytics report",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		},
	)
	r.archivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_archives_total",
			Help: "Total number of report snapshots archived",
		},
		[]string{"status"},
	)
	r.importsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_imports_total",
			Help: "Total number of imported CSV rows",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.tradesSaved)
	reg.MustRegister(r.derivations)
	reg.MustRegister(r.reportsTotal)
	reg.MustRegister(r.reportDuration)
	reg.MustRegister(r.reportTrades)
	reg.MustRegister(r.archivesTotal)
	reg.MustRegister(r.importsTotal)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordTradeSaved records a trade write. op is "create", "update" or "delete".
func (r *Registry) RecordTradeSaved(op, result string) {
	r.tradesSaved.WithLabelValues(op, result).Inc()
}

// RecordDerivation records whether a derivation computed any field.
func (r *Registry) RecordDerivation(computed bool) {
	outcome := "computed"
	if !computed {
		outcome = "degenerate"
	}
	r.derivations.WithLabelValues(outcome).Inc()
}

// RecordReport records an analytics report build.
func (r *Registry) RecordReport(trades int, duration float64) {
	r.reportsTotal.Inc()
	r.reportDuration.Observe(duration)
	r.reportTrades.Observe(float64(trades))
}

// RecordArchive records a report snapshot write.
func (r *Registry) RecordArchive(status string) {
	r.archivesTotal.WithLabelValues(status).Inc()
}

// RecordImport records the outcome of one imported row.
func (r *Registry) RecordImport(status string) {
	r.importsTotal.WithLabelValues(status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
