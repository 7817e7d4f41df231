// Package metrics exposes build counters for the preview server on a private
// Prometheus registry, so tests and embedding processes never collide with
// the global default registry.
package metrics

import (
	"net/http"
	"sync/atomic"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder aggregates build metrics and serves them over HTTP.
type Recorder struct {
	registry *prom.Registry

	buildsTotal       prom.Counter
	buildsFailedTotal prom.Counter
	buildsSkipped     prom.Counter

	lastPosts      atomic.Int64
	lastDurationMS atomic.Int64
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prom.NewRegistry()}

	r.buildsTotal = prom.NewCounter(prom.CounterOpts{
		Namespace: "blogbuilder", Name: "builds_total",
		Help: "Total builds attempted",
	})
	r.buildsFailedTotal = prom.NewCounter(prom.CounterOpts{
		Namespace: "blogbuilder", Name: "builds_failed_total",
		Help: "Builds that ended in error",
	})
	r.buildsSkipped = prom.NewCounter(prom.CounterOpts{
		Namespace: "blogbuilder", Name: "builds_skipped_total",
		Help: "Rebuilds skipped because the fingerprint was unchanged",
	})
	lastPostsGauge := prom.NewGaugeFunc(prom.GaugeOpts{
		Namespace: "blogbuilder", Name: "last_build_posts",
		Help: "Posts rendered in the most recent successful build",
	}, func() float64 { return float64(r.lastPosts.Load()) })
	lastDurationGauge := prom.NewGaugeFunc(prom.GaugeOpts{
		Namespace: "blogbuilder", Name: "last_build_duration_ms",
		Help: "Duration of the most recent build in milliseconds",
	}, func() float64 { return float64(r.lastDurationMS.Load()) })

	r.registry.MustRegister(r.buildsTotal, r.buildsFailedTotal, r.buildsSkipped, lastPostsGauge, lastDurationGauge)
	r.registry.MustRegister(promcollect.NewGoCollector())
	return r
}

// BuildFinished records the outcome of one build attempt.
func (r *Recorder) BuildFinished(posts int, durationMS float64, err error) {
	r.buildsTotal.Inc()
	r.lastDurationMS.Store(int64(durationMS))
	if err != nil {
		r.buildsFailedTotal.Inc()
		return
	}
	r.lastPosts.Store(int64(posts))
}

// BuildSkipped records a rebuild gated away by an unchanged fingerprint.
func (r *Recorder) BuildSkipped() {
	r.buildsSkipped.Inc()
}

// Handler returns the /metrics HTTP handler for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
