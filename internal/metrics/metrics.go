// Package metrics exposes Prometheus counters for hunt turns and generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gifthunt"

// Recorder owns a private registry so tests and servers never collide on
// the global one.
type Recorder struct {
	registry *prometheus.Registry

	turnsTotal         *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	generationsTotal   *prometheus.CounterVec
	huntsCompleted     prometheus.Counter
	softenedTotal      *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Total number of chat turns by result kind",
			},
			[]string{"result"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of text generation calls in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"purpose"}, // purpose: rewrite, hint
		),
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of text generation calls",
			},
			[]string{"purpose", "status"}, // status: success, error, timeout
		),
		huntsCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hunts_completed_total",
				Help:      "Number of hunts whose last gift was completed",
			},
		),
		softenedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "softened_total",
				Help:      "Generated texts the tone filter had to soften",
			},
			[]string{"purpose"},
		),
	}

	r.registry.MustRegister(r.turnsTotal, r.generationDuration, r.generationsTotal, r.huntsCompleted, r.softenedTotal)
	r.registry.MustRegister(collectors.NewGoCollector())
	r.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

// RecordTurn counts one Advance outcome by its kind name.
func (r *Recorder) RecordTurn(kind string) {
	r.turnsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordCompletion() {
	r.huntsCompleted.Inc()
}

func (r *Recorder) RecordSoftened(purpose string) {
	r.softenedTotal.WithLabelValues(purpose).Inc()
}

func (r *Recorder) RecordGeneration(purpose, status string, d time.Duration) {
	r.generationDuration.WithLabelValues(purpose).Observe(d.Seconds())
	r.generationsTotal.WithLabelValues(purpose, status).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
