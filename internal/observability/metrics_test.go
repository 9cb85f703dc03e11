package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveAction("SPOT_TRADE", nil)
	m.ObserveAction("SPOT_TRADE", errors.New("insufficient funds"))
	m.ObserveAction("SPOT_TRADE", nil)
	m.AddDays(3)
	m.AddDays(0)
	m.ObserveSave(0.01, nil)
	m.SessionStarted()
	m.SessionStarted()
	m.SessionStopped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("SPOT_TRADE", ResultApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("SPOT_TRADE", ResultRejected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DaysAdvanced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SavesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAction("TICK", nil)
		m.AddDays(1)
		m.ObserveSave(1, nil)
		m.SessionStarted()
		m.StreamClosed()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := NewMetrics("", nil)
	m.AddDays(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dtsim_engine_days_advanced_total 2")
}
