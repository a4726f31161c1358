package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("booking-flow-test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "booking-flow-test"))
	r.HandleFunc("/api/v1/booking-flow", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/booking-flow/commit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-flow", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/booking-flow/commit", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Счетчик и гистограмма помечаются одним и тем же набором меток
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/booking-flow", "200")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))

	counter = m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/booking-flow/commit", "503")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))

	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}
