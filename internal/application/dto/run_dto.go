package dto

import "time"

// RunRequest parámetros de una corrida disparada por HTTP.
type RunRequest struct {
	DryRun bool `json:"dry_run"`
}

// RunSummary resultado de una corrida del pipeline.
type RunSummary struct {
	RunID       string           `json:"run_id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	DryRun      bool             `json:"dry_run"`
	NewStocks   []string         `json:"new_stocks"`
	Relevant    int              `json:"relevant"`
	Reconciled  int              `json:"reconciled"`
	Dropped     []string         `json:"dropped"`
	Significant []PriceChangeDTO `json:"significant"`
	// ForecastSkipped stocks de categorías pronosticables sin pronóstico (historial corto o pronóstico cero).
	ForecastSkipped []string `json:"forecast_skipped"`
	Notified        bool     `json:"notified"`
	Written         []string `json:"written"` // tablas reescritas, en orden
	ReportURL       string   `json:"report_url,omitempty"`
}
