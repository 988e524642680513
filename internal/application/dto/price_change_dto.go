package dto

// PriceChangeDTO registro de presentación de un cambio significativo (correo, API, PDF).
// Los costos llevan separador de miles y el porcentaje el indicador de dirección.
type PriceChangeDTO struct {
	StockName        string       `json:"stock_name"`
	UnitName         string       `json:"unit_name"`
	Category         string       `json:"category"`
	BaseCostPrice    string       `json:"base_cost_price"`
	PrevCostPrice    string       `json:"prev_cost_price"`
	CurrentCostPrice string       `json:"current_cost_price"`
	PercentageChange string       `json:"percentage_change"`
	Rise             bool         `json:"rise"`
	Forecast         *ForecastDTO `json:"forecast,omitempty"`
	ForecastSkipped  string       `json:"forecast_skipped,omitempty"` // motivo si el pronóstico se omitió
	Insight          string       `json:"insight,omitempty"`
}

// ForecastDTO bloque de pronóstico semanal adjunto a un cambio.
type ForecastDTO struct {
	CurrentWeekEnd      string  `json:"current_week_end"`
	CurrentWeekForecast float64 `json:"current_week_forecast"`
	ActualUnitsIssued   float64 `json:"actual_units_issued"`
	ForecastAccuracyPct float64 `json:"forecast_accuracy_pct"`
	UpcomingWeekEnd     string  `json:"upcoming_week_end"`
	UpcomingForecast    float64 `json:"upcoming_week_forecast"`
	UpcomingLowerCI     float64 `json:"upcoming_week_lower_ci"`
	UpcomingUpperCI     float64 `json:"upcoming_week_upper_ci"`
}
