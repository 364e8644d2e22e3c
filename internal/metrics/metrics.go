// Package metrics exposes Prometheus counters for generation runs and the
// HTTP API. Each Metrics owns its registry, so tests and multiple servers
// in one process never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

const namespace = "kennzeichen"

type Metrics struct {
	reg *prometheus.Registry

	words       *prometheus.CounterVec
	runs        prometheus.Counter
	lastAccepts prometheus.Gauge
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	decompose   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		words: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Words seen by the generator, by outcome.",
		}, []string{"outcome"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed generation runs.",
		}),
		lastAccepts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_accepted",
			Help:      "Puzzles accepted by the most recent run.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		decompose: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decompose_total",
			Help:      "On-demand decompositions by result.",
		}, []string{"found"}),
	}
	m.reg.MustRegister(m.words, m.runs, m.lastAccepts, m.requests, m.latency, m.decompose)
	return m
}

// ObserveRun records the stats of one generation run.
func (m *Metrics) ObserveRun(s puzzle.Stats) {
	m.runs.Inc()
	m.words.WithLabelValues("attempted").Add(float64(s.Attempted))
	m.words.WithLabelValues("decomposed").Add(float64(s.Decomposed))
	m.words.WithLabelValues("accepted").Add(float64(s.Accepted))
	m.words.WithLabelValues("invalid").Add(float64(s.Invalid))
	m.words.WithLabelValues("filtered").Add(float64(s.Candidates - s.Eligible))
	m.lastAccepts.Set(float64(s.Accepted))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveDecompose counts one on-demand decomposition.
func (m *Metrics) ObserveDecompose(found bool) {
	m.decompose.WithLabelValues(strconv.FormatBool(found)).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
