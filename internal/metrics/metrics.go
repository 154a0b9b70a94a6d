// Package metrics records per-source outcomes of one batch run and
// pushes them to a Pushgateway when one is configured. A scrape
// endpoint makes no sense for a job that exits after one pass.
package metrics

import (
	"time"

	"dnb_digest/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

type Run struct {
	registry *prometheus.Registry
	fetched  *prometheus.CounterVec
	kept     *prometheus.CounterVec
	failed   *prometheus.CounterVec
	duration prometheus.Gauge
	started  time.Time
}

func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		fetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_source_items_fetched_total",
			Help: "Entries fetched per source before filtering.",
		}, []string{"source"}),
		kept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_source_items_kept_total",
			Help: "Entries kept per source after genre filtering.",
		}, []string{"source"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "digest_source_failures_total",
			Help: "Sources whose fetch or parse failed this run.",
		}, []string{"source"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "digest_run_duration_seconds",
			Help: "Wall time of the whole pipeline run.",
		}),
		started: time.Now(),
	}
	r.registry.MustRegister(r.fetched, r.kept, r.failed, r.duration)
	return r
}

// Record folds one source report into the run metrics.
func (r *Run) Record(rep models.SourceReport) {
	r.fetched.WithLabelValues(rep.Source).Add(float64(rep.Fetched))
	r.kept.WithLabelValues(rep.Source).Add(float64(rep.Kept))
	if rep.Err != nil {
		r.failed.WithLabelValues(rep.Source).Inc()
	}
}

// Push sends the run metrics to the Pushgateway at url.
func (r *Run) Push(url string) error {
	r.duration.Set(time.Since(r.started).Seconds())
	return push.New(url, "dnb_digest").Gatherer(r.registry).Push()
}
