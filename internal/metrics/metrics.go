// Package metrics exposes prometheus instruments for classification,
// lineup builds, table reloads and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contrarian_dfs"

// Build outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeNoLineup   = "no_valid_lineup"
	OutcomeBadRequest = "invalid_request"
)

// Recorder owns a private registry so tests can create as many as they like.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	builds          *prometheus.CounterVec
	buildDuration   *prometheus.HistogramVec
	reloads         *prometheus.CounterVec
	tableSize       prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Players classified, by play type.",
		}, []string{"play_type"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lineup_builds_total",
			Help:      "Lineup build attempts, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lineup_build_duration_seconds",
			Help:      "Time spent building a lineup.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		}, []string{"strategy"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_reloads_total",
			Help:      "Player table reloads, by outcome.",
		}, []string{"outcome"}),
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_table_rows",
			Help:      "Rows in the current classified player table.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	r.registry.MustRegister(
		r.classifications,
		r.builds,
		r.buildDuration,
		r.reloads,
		r.tableSize,
		r.httpRequests,
		r.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordClassification(playType string) {
	if r == nil {
		return
	}
	r.classifications.WithLabelValues(playType).Inc()
}

func (r *Recorder) RecordBuild(strategy, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.builds.WithLabelValues(strategy, outcome).Inc()
	r.buildDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

func (r *Recorder) RecordReload(err error, rows int) {
	if r == nil {
		return
	}
	if err != nil {
		r.reloads.WithLabelValues("error").Inc()
		return
	}
	r.reloads.WithLabelValues(OutcomeSuccess).Inc()
	r.tableSize.Set(float64(rows))
}

func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
