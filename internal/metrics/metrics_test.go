package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	rec.ObserveDetailRequest(20*time.Millisecond, nil)
	rec.ObserveDetailRequest(40*time.Millisecond, nil)
	rec.ObserveDetailRequest(time.Second, errors.Network("GET returned 500"))
	rec.ObserveAggregation(entities.Ready([]*entities.Pokemon{{Name: "bulbasaur"}, {Name: "ivysaur"}}))
	rec.ObserveAggregation(entities.Failed(errors.MalformedResponse("no stats")))

	count, err := testutil.GatherAndCount(reg, "pokedex_catalog_detail_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	body := `
# HELP pokedex_catalog_aggregations_total Completed catalog aggregations by outcome.
# TYPE pokedex_catalog_aggregations_total counter
pokedex_catalog_aggregations_total{outcome="malformed_response"} 1
pokedex_catalog_aggregations_total{outcome="ok"} 1
# HELP pokedex_catalog_detail_requests_total Detail record requests by outcome.
# TYPE pokedex_catalog_detail_requests_total counter
pokedex_catalog_detail_requests_total{outcome="network"} 1
pokedex_catalog_detail_requests_total{outcome="ok"} 2
# HELP pokedex_catalog_last_size Number of pokemon in the last ready catalog.
# TYPE pokedex_catalog_last_size gauge
pokedex_catalog_last_size 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(body),
		"pokedex_catalog_aggregations_total",
		"pokedex_catalog_detail_requests_total",
		"pokedex_catalog_last_size",
	))
}

func TestNilRecorder(t *testing.T) {
	var rec *metrics.Recorder

	assert.NotPanics(t, func() {
		rec.ObserveDetailRequest(time.Millisecond, nil)
		rec.ObserveAggregation(entities.Ready(nil))
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg).ObserveDetailRequest(time.Millisecond, nil)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pokedex_catalog_detail_requests_total{outcome="ok"} 1`)
}
