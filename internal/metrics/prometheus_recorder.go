package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	documentDuration prom.Histogram
	runDuration      prom.Histogram
	documentResults  *prom.CounterVec
	documentsFound   prom.Gauge
}

// NewPrometheusRecorder constructs and registers the generation metrics on
// the given registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.documentDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "composegen",
		Name:      "document_duration_seconds",
		Help:      "Time spent generating a single document",
		Buckets:   prom.DefBuckets,
	})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "composegen",
		Name:      "run_duration_seconds",
		Help:      "Total duration of a generation run",
		Buckets:   prom.DefBuckets,
	})
	pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "composegen",
		Name:      "document_results_total",
		Help:      "Per-document outcomes by result",
	}, []string{"result"})
	pr.documentsFound = prom.NewGauge(prom.GaugeOpts{
		Namespace: "composegen",
		Name:      "documents_discovered",
		Help:      "Markdown documents discovered in the last run",
	})
	reg.MustRegister(pr.documentDuration, pr.runDuration, pr.documentResults, pr.documentsFound)
	return pr
}

// Handler returns an HTTP handler exposing the recorder's registry, for the
// preview server's /metrics endpoint.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetDocumentsDiscovered(n int) {
	if p == nil || p.documentsFound == nil {
		return
	}
	p.documentsFound.Set(float64(n))
}
