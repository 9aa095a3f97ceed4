// Package metrics exposes FraudLens measurements to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraudlens"

// Registry owns every collector the service reports. It satisfies the
// MetricsRecorder interfaces of the fraud, disposition and ingest services.
type Registry struct {
	reg *prometheus.Registry

	scoringRuns         prometheus.Counter
	scoringDuration     prometheus.Histogram
	scoredTransactions  prometheus.Counter
	flaggedTransactions prometheus.Counter
	riskScores          *prometheus.HistogramVec
	fingerprintMismatch *prometheus.CounterVec

	dispositions  *prometheus.CounterVec
	verifications *prometheus.CounterVec
	lockWait      *prometheus.HistogramVec

	ingestedRows *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with Go runtime and process collectors attached.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		scoringRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "scoring_runs_total",
			Help: "Scoring batches processed.",
		}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "scoring_duration_seconds",
			Help:    "Time to score one batch.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		scoredTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "scored_transactions_total",
			Help: "Returns scored.",
		}),
		flaggedTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "flagged_transactions_total",
			Help: "Returns flagged as fraudulent.",
		}),
		riskScores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "risk_score",
			Help:    "Distribution of final risk scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 9),
		}, []string{"is_fraud"}),
		fingerprintMismatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fingerprint_mismatches_total",
			Help: "Return fingerprints that differed from the purchase snapshot.",
		}, []string{"category"}),
		dispositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "dispositions_total",
			Help: "Order status changes.",
		}, []string{"status", "source"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "verifications_total",
			Help: "Field verifications by result.",
		}, []string{"result"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "lock_wait_seconds",
			Help:    "Time spent acquiring workflow locks.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"lock"}),
		ingestedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "ingested_rows_total",
			Help: "Rows received by ingestion, split into added and skipped.",
		}, []string{"source", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.scoringRuns, r.scoringDuration, r.scoredTransactions, r.flaggedTransactions,
		r.riskScores, r.fingerprintMismatch,
		r.dispositions, r.verifications, r.lockWait,
		r.ingestedRows,
		r.httpRequests, r.httpDuration,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry for tests and pushers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) ObserveScoringRun(batchSize, flagged int, duration time.Duration) {
	r.scoringRuns.Inc()
	r.scoringDuration.Observe(duration.Seconds())
	r.scoredTransactions.Add(float64(batchSize))
	r.flaggedTransactions.Add(float64(flagged))
}

func (r *Registry) ObserveRiskScore(score int, isFraud bool) {
	r.riskScores.WithLabelValues(strconv.FormatBool(isFraud)).Observe(float64(score))
}

func (r *Registry) ObserveFingerprintMismatch(category string) {
	r.fingerprintMismatch.WithLabelValues(category).Inc()
}

func (r *Registry) ObserveDisposition(status, source string) {
	r.dispositions.WithLabelValues(status, source).Inc()
}

func (r *Registry) ObserveVerification(result string) {
	r.verifications.WithLabelValues(result).Inc()
}

func (r *Registry) ObserveLockWait(lock string, wait time.Duration) {
	r.lockWait.WithLabelValues(lock).Observe(wait.Seconds())
}

func (r *Registry) ObserveIngest(source string, received, added int) {
	r.ingestedRows.WithLabelValues(source, "added").Add(float64(added))
	r.ingestedRows.WithLabelValues(source, "skipped").Add(float64(received - added))
}

// ObserveHTTPRequest records one served request. route is the matched pattern,
// never the raw path, to keep label cardinality bounded.
func (r *Registry) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
