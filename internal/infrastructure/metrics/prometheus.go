// Package metrics publica los contadores de corrida en Prometheus.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

const namespace = "inventory_insights"

var _ ports.RunMetrics = (*RunMetrics)(nil)

// RunMetrics registra la última corrida (gauges) y el total de corridas (counter).
// Con pushURL vacío Push no hace nada; el registro igual se puede exponer con Handler.
type RunMetrics struct {
	registry *prometheus.Registry
	pusher   *push.Pusher

	reconciled  prometheus.Gauge
	significant prometheus.Gauge
	dropped     prometheus.Gauge
	forecasted  prometheus.Gauge
	skipped     prometheus.Gauge
	newStocks   prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
	runs        *prometheus.CounterVec
}

// NewRunMetrics crea el registro y, si pushURL no es vacío, el pusher al Pushgateway.
func NewRunMetrics(pushURL, job string) *RunMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &RunMetrics{
		registry:    prometheus.NewRegistry(),
		reconciled:  gauge("reconciled_stocks", "Stocks conciliados en la última corrida."),
		significant: gauge("significant_changes", "Cambios significativos en la última corrida."),
		dropped:     gauge("dropped_stocks", "Stocks relevantes ausentes en alguna tabla de costos."),
		forecasted:  gauge("forecasted_stocks", "Stocks con pronóstico en la última corrida."),
		skipped:     gauge("forecast_skipped_stocks", "Stocks pronosticables omitidos por historial corto o pronóstico cero."),
		newStocks:   gauge("new_stocks", "Stocks agregados a base y anterior."),
		duration:    gauge("run_duration_seconds", "Duración de la última corrida."),
		lastSuccess: gauge("last_success_timestamp_seconds", "Hora de la última corrida exitosa."),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total", Help: "Corridas por resultado.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.reconciled, m.significant, m.dropped, m.forecasted,
		m.skipped, m.newStocks, m.duration, m.lastSuccess, m.runs)

	if pushURL != "" {
		if job == "" {
			job = "pricewatch"
		}
		m.pusher = push.New(pushURL, job).Gatherer(m.registry)
	}
	return m
}

// ObserveRun actualiza los valores con el resultado de una corrida.
func (m *RunMetrics) ObserveRun(s ports.RunStats) {
	result := "success"
	switch {
	case s.Failed:
		result = "failed"
	case s.DryRun:
		result = "dry_run"
	}
	m.runs.WithLabelValues(result).Inc()
	m.duration.Set(s.DurationSecs)
	if s.Failed {
		return
	}
	m.reconciled.Set(float64(s.Reconciled))
	m.significant.Set(float64(s.Significant))
	m.dropped.Set(float64(s.Dropped))
	m.forecasted.Set(float64(s.Forecasted))
	m.skipped.Set(float64(s.ForecastSkip))
	m.newStocks.Set(float64(s.NewStocks))
	if !s.DryRun {
		m.lastSuccess.SetToCurrentTime()
	}
}

// Push envía el registro al Pushgateway.
func (m *RunMetrics) Push(ctx context.Context) error {
	if m.pusher == nil {
		return nil
	}
	if err := m.pusher.PushContext(ctx); err != nil {
		return domain.External("pushgateway", "push", err)
	}
	return nil
}

// Handler expone el registro para scraping.
func (m *RunMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
