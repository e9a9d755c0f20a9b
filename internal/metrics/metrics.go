// Package metrics exposes Prometheus instrumentation for catalog loads
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	namespace = "pokedex"
	subsystem = "catalog"

	outcomeOK = "ok"
)

// Recorder records catalog metrics. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	detailRequests *prometheus.CounterVec
	detailDuration prometheus.Histogram
	aggregations   *prometheus.CounterVec
	lastSize       prometheus.Gauge
}

// New registers the catalog metrics with reg
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		detailRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "detail_requests_total",
			Help:      "Detail record requests by outcome.",
		}, []string{"outcome"}),
		detailDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "detail_request_duration_seconds",
			Help:      "Latency of detail record requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		aggregations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "aggregations_total",
			Help:      "Completed catalog aggregations by outcome.",
		}, []string{"outcome"}),
		lastSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_size",
			Help:      "Number of pokemon in the last ready catalog.",
		}),
	}
}

// ObserveDetailRequest records one detail request
func (r *Recorder) ObserveDetailRequest(elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.detailDuration.Observe(elapsed.Seconds())
	r.detailRequests.WithLabelValues(outcome(err)).Inc()
}

// ObserveAggregation records the terminal outcome of one aggregation
func (r *Recorder) ObserveAggregation(result *entities.AggregationResult) {
	if r == nil || result == nil {
		return
	}
	r.aggregations.WithLabelValues(outcome(result.Err())).Inc()
	if result.IsReady() {
		r.lastSize.Set(float64(len(result.Pokemon)))
	}
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	return strings.ToLower(errors.GetCode(err).String())
}
