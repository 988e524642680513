package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/metrics"
)

func scrape(t *testing.T, m *metrics.RunMetrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRunMetrics_ObserveRun(t *testing.T) {
	m := metrics.NewRunMetrics("", "")
	m.ObserveRun(ports.RunStats{Reconciled: 12, Significant: 3, Dropped: 1, Forecasted: 2, ForecastSkip: 1, DurationSecs: 2.5})
	m.ObserveRun(ports.RunStats{Failed: true, DurationSecs: 0.1})

	body := scrape(t, m)
	assert.Contains(t, body, "inventory_insights_reconciled_stocks 12")
	assert.Contains(t, body, "inventory_insights_significant_changes 3")
	assert.Contains(t, body, "inventory_insights_forecasted_stocks 2")
	assert.Contains(t, body, "inventory_insights_forecast_skipped_stocks 1")
	assert.Contains(t, body, `inventory_insights_runs_total{result="success"} 1`)
	assert.Contains(t, body, `inventory_insights_runs_total{result="failed"} 1`)
	assert.Contains(t, body, "inventory_insights_run_duration_seconds 0.1")
}

func TestRunMetrics_PushSinURLNoHaceNada(t *testing.T) {
	require.NoError(t, metrics.NewRunMetrics("", "").Push(context.Background()))
}

func TestRunMetrics_Push(t *testing.T) {
	var hits atomic.Int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := metrics.NewRunMetrics(srv.URL, "pricewatch")
	m.ObserveRun(ports.RunStats{Reconciled: 1})
	require.NoError(t, m.Push(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, strings.HasSuffix(path.Load().(string), "/job/pricewatch"))
}
