package entity

import "time"

// WeeklyUsage consumo agregado de una semana (lunes a domingo), etiquetado por el domingo.
type WeeklyUsage struct {
	WeekEnd time.Time
	Usage   float64
}

// ForecastResult pronóstico de demanda de un stock.
// CurrentWeek* corresponde a la última semana observada; Upcoming* a la semana siguiente.
type ForecastResult struct {
	StockName           string
	CurrentWeekEnd      time.Time
	CurrentWeekForecast float64 // pronóstico puntual de la semana ya transcurrida
	ActualIssued        float64
	AccuracyPct         float64 // ActualIssued / CurrentWeekForecast * 100
	UpcomingWeekEnd     time.Time
	UpcomingForecast    float64
	UpcomingLowerCI     float64 // >= 0
	UpcomingUpperCI     float64 // >= 0
}

// ForecastBatch pronósticos de varios stocks. Skipped guarda, por stock omitido, el motivo.
type ForecastBatch struct {
	Results map[string]*ForecastResult
	Skipped map[string]string
}
