// Package metrics defines the Prometheus collectors used by the answer
// server and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal  *prometheus.CounterVec
	AnswersTotal       *prometheus.CounterVec
	AnswerLatency      prometheus.Histogram
	CandidateSentences prometheus.Histogram
	CorpusDocuments    prometheus.Gauge
	SharedAnswersTotal prometheus.Counter
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_http_requests_total",
				Help: "Total number of HTTP requests by path and status.",
			},
			[]string{"path", "status"},
		),
		AnswersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quest_answers_total",
				Help: "Answers by outcome (ok, no_match, invalid, error).",
			},
			[]string{"outcome"},
		),
		AnswerLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quest_answer_duration_seconds",
				Help:    "Time to rank files and sentences for one query.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		CandidateSentences: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quest_candidate_sentences",
				Help:    "Number of candidate sentences ranked per query.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		CorpusDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quest_corpus_documents",
				Help: "Documents in the loaded corpus.",
			},
		),
		SharedAnswersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quest_shared_answers_total",
				Help: "Requests answered by joining an identical in-flight query.",
			},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.AnswersTotal,
		m.AnswerLatency,
		m.CandidateSentences,
		m.CorpusDocuments,
		m.SharedAnswersTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
