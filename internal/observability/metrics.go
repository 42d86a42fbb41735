package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry       *prometheus.Registry
	Generations    *prometheus.CounterVec
	StageFailures  *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	ImagesRendered *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors (plus Go and process
// collectors) on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "review_writer",
			Name:      "generations_total",
			Help:      "Generation requests by outcome.",
		}, []string{"status"}),
		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "review_writer",
			Name:      "stage_failures_total",
			Help:      "Fatal stage failures by stage.",
		}, []string{"stage"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "review_writer",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		ImagesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "review_writer",
			Name:      "images_rendered_total",
			Help:      "Image render calls by result.",
		}, []string{"result"}),
	}
}

// ObserveGeneration counts a finished request; status is "success" or "failed".
func (m *Metrics) ObserveGeneration(status string) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(status).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveStageFailure counts a fatal failure of stage.
func (m *Metrics) ObserveStageFailure(stage string) {
	if m == nil {
		return
	}
	m.StageFailures.WithLabelValues(stage).Inc()
}

// ObserveImage counts one render call.
func (m *Metrics) ObserveImage(ok bool) {
	if m == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	m.ImagesRendered.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
