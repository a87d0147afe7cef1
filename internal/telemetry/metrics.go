// Package telemetry holds the Prometheus collectors exported on /metrics.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// ImportRowsTotal counts uploaded rows by result (accepted, rejected).
	ImportRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storepulse",
		Subsystem: "ingest",
		Name:      "rows_total",
		Help:      "Rows read from uploaded sales files, labeled by result.",
	}, []string{"result"})

	// ImportsTotal counts upload attempts by outcome.
	ImportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storepulse",
		Subsystem: "ingest",
		Name:      "imports_total",
		Help:      "Sales file imports, labeled by outcome.",
	}, []string{"outcome"})

	// SynthesisTotal counts report generation attempts by outcome.
	SynthesisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storepulse",
		Subsystem: "reports",
		Name:      "synthesis_total",
		Help:      "Report synthesis requests, labeled by provider and outcome.",
	}, []string{"provider", "outcome"})

	ProviderLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storepulse",
		Subsystem: "reports",
		Name:      "provider_latency_seconds",
		Help:      "Time spent waiting on the generation provider.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	PDFRendersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storepulse",
		Subsystem: "reports",
		Name:      "pdf_renders_total",
		Help:      "Report PDFs rendered.",
	})
)

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ImportRowsTotal,
			ImportsTotal,
			SynthesisTotal,
			ProviderLatencySeconds,
			PDFRendersTotal,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
