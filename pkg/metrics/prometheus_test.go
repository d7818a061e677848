package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujit-maker/move-sub001/pkg/metrics"
)

func TestRecorder(t *testing.T) {
	m := metrics.New("ledger_test")

	m.TransitionApplied("ALLOTTED", "EMPTY PICKED UP", 3, 20*time.Millisecond)
	m.TransitionApplied("ALLOTTED", "EMPTY PICKED UP", 2, 10*time.Millisecond)
	m.TransitionRejected("DAMAGED", "missing_remarks")
	m.DateCorrected(true)
	m.DateCorrected(false)
	m.DateCorrected(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransitionsApplied.WithLabelValues("ALLOTTED", "EMPTY PICKED UP")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ContainersMoved.WithLabelValues("EMPTY PICKED UP")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsRejected.WithLabelValues("DAMAGED", "missing_remarks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DateCorrections.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DateCorrections.WithLabelValues("false")))
}

func TestInstanciasIndependientes(t *testing.T) {
	a := metrics.New("ledger_a")
	b := metrics.New("ledger_a")
	a.TransitionRejected("SOB", "unknown_job")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TransitionsRejected.WithLabelValues("SOB", "unknown_job")))
}

func TestHandler(t *testing.T) {
	m := metrics.New("ledger_test")
	m.ObserveHTTP("/api/movements/latest", "GET", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `ledger_test_http_requests_total{code="200",method="GET",route="/api/movements/latest"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
