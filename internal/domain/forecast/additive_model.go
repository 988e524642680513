package forecast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// Point observación de la serie histórica.
type Point struct {
	Time  time.Time
	Value float64
}

// Prediction pronóstico puntual con su intervalo de confianza.
type Prediction struct {
	Time  time.Time
	Point float64
	Lower float64
	Upper float64
}

// AdditiveConfig parámetros del modelo aditivo.
type AdditiveConfig struct {
	IntervalWidth  float64 // ancho del intervalo, ej. 0.80
	SeasonalPeriod int     // observaciones por ciclo; <= 1 desactiva la estacionalidad
}

// DefaultAdditiveConfig intervalo del 80 % y ciclo anual sobre datos semanales.
func DefaultAdditiveConfig() AdditiveConfig {
	return AdditiveConfig{IntervalWidth: 0.80, SeasonalPeriod: 52}
}

// AdditiveModel ajusta y = tendencia lineal + perfil estacional + ruido.
// La estacionalidad sólo se estima con al menos dos ciclos completos de historia.
// Cada instancia se ajusta una vez; no es segura para uso concurrente.
type AdditiveModel struct {
	cfg AdditiveConfig

	times     []time.Time
	step      time.Duration
	intercept float64
	slope     float64
	seasonal  []float64 // nil si no hay estacionalidad
	halfWidth float64
	fitted    bool
}

// NewAdditiveModel construye un modelo sin ajustar.
func NewAdditiveModel(cfg AdditiveConfig) *AdditiveModel {
	if cfg.IntervalWidth <= 0 || cfg.IntervalWidth >= 1 {
		cfg.IntervalWidth = DefaultAdditiveConfig().IntervalWidth
	}
	return &AdditiveModel{cfg: cfg}
}

// Fit ajusta el modelo a la serie (se asume equiespaciada y ordenada).
func (m *AdditiveModel) Fit(series []Point) error {
	n := len(series)
	if n < 2 {
		return fmt.Errorf("ajuste con %d puntos: %w", n, domain.ErrInsufficientHistory)
	}
	x := make([]float64, n)
	y := make([]float64, n)
	m.times = make([]time.Time, n)
	for i, p := range series {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("valor no finito en %s: %w", p.Time.Format("2006-01-02"), domain.ErrInvalidInput)
		}
		x[i] = float64(i)
		y[i] = p.Value
		m.times[i] = p.Time
	}
	m.step = series[n-1].Time.Sub(series[n-2].Time)

	m.intercept, m.slope = stat.LinearRegression(x, y, nil, false)

	detrended := make([]float64, n)
	for i := range y {
		detrended[i] = y[i] - m.trend(i)
	}

	m.seasonal = nil
	period := m.cfg.SeasonalPeriod
	if period > 1 && n >= 2*period {
		m.seasonal = seasonalProfile(detrended, period)
	}

	residuals := make([]float64, n)
	for i := range detrended {
		residuals[i] = detrended[i] - m.season(i)
	}
	sigma := stat.StdDev(residuals, nil)
	if math.IsNaN(sigma) {
		sigma = 0
	}
	z := distuv.UnitNormal.Quantile(0.5 + m.cfg.IntervalWidth/2)
	m.halfWidth = z * sigma
	m.fitted = true
	return nil
}

// Predict devuelve las predicciones dentro de la muestra seguidas de `horizon` pasos futuros.
func (m *AdditiveModel) Predict(horizon int) ([]Prediction, error) {
	if !m.fitted {
		return nil, fmt.Errorf("predict antes de fit: %w", domain.ErrInvalidInput)
	}
	if horizon < 0 {
		return nil, fmt.Errorf("horizonte negativo: %w", domain.ErrInvalidInput)
	}
	n := len(m.times)
	out := make([]Prediction, 0, n+horizon)
	for i := 0; i < n+horizon; i++ {
		var ts time.Time
		if i < n {
			ts = m.times[i]
		} else {
			ts = m.times[n-1].Add(time.Duration(i-n+1) * m.step)
		}
		point := m.trend(i) + m.season(i)
		out = append(out, Prediction{
			Time:  ts,
			Point: point,
			Lower: point - m.halfWidth,
			Upper: point + m.halfWidth,
		})
	}
	return out, nil
}

func (m *AdditiveModel) trend(i int) float64 {
	return m.intercept + m.slope*float64(i)
}

func (m *AdditiveModel) season(i int) float64 {
	if m.seasonal == nil {
		return 0
	}
	return m.seasonal[i%len(m.seasonal)]
}

// seasonalProfile promedia los residuos por posición en el ciclo y centra el perfil en cero.
func seasonalProfile(detrended []float64, period int) []float64 {
	sums := make([]float64, period)
	counts := make([]float64, period)
	for i, v := range detrended {
		sums[i%period] += v
		counts[i%period]++
	}
	profile := make([]float64, period)
	for k := range profile {
		profile[k] = sums[k] / counts[k]
	}
	mean := stat.Mean(profile, nil)
	for k := range profile {
		profile[k] -= mean
	}
	return profile
}
