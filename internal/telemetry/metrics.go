package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records pass/fail/skip/error counts as they happen, so a
// long-running conformance sweep can be scraped mid-run rather than only
// read from the final summary. Grounded on AleutianLocal's
// cmd/aleutian/internal/diagnostics/metrics.go NoOp/real split.
type Metrics interface {
	// ObserveResult increments the gauge matching status for category.
	ObserveResult(category, status string)
	// Shutdown stops serving metrics, if the implementation started a
	// listener. Safe to call on a NoopMetrics.
	Shutdown() error
}

// NoopMetrics is the default Metrics: used unless --metrics-addr is set.
type NoopMetrics struct{}

// NewNoopMetrics returns a ready-to-use NoopMetrics.
func NewNoopMetrics() *NoopMetrics { return &NoopMetrics{} }

func (NoopMetrics) ObserveResult(string, string) {}
func (NoopMetrics) Shutdown() error              { return nil }

// PrometheusMetrics serves a /metrics endpoint with one gauge vector
// tracking probe outcomes by category and status.
type PrometheusMetrics struct {
	registry *prometheus.Registry
	results  *prometheus.GaugeVec
	server   *http.Server
}

// NewPrometheusMetrics registers the gauge vector and starts listening on
// addr. The caller must call Shutdown to stop the listener.
func NewPrometheusMetrics(addr string) (*PrometheusMetrics, error) {
	registry := prometheus.NewRegistry()
	results := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "odbccrusher",
		Name:      "probe_results_total",
		Help:      "Count of probe outcomes observed so far in this run, by category and status.",
	}, []string{"category", "status"})
	registry.MustRegister(results)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	m := &PrometheusMetrics{registry: registry, results: results, server: server}
	go func() {
		_ = server.ListenAndServe()
	}()
	return m, nil
}

func (m *PrometheusMetrics) ObserveResult(category, status string) {
	m.results.WithLabelValues(category, status).Inc()
}

func (m *PrometheusMetrics) Shutdown() error {
	return m.server.Close()
}
