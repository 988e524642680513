package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// iqrFactor multiplica el rango intercuartílico para obtener el umbral de outliers.
const iqrFactor = 1.5

// Quartiles devuelve Q1 y Q3 con interpolación lineal (índice = p·(n-1)).
func Quartiles(values []float64) (q1, q3 float64, err error) {
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("cuartiles de serie vacía: %w", domain.ErrInvalidInput)
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentile(sorted, 0.25), percentile(sorted, 0.75), nil
}

// Outliers devuelve, en el orden de entrada, los valores estrictamente por debajo de
// Q1 - 1.5·IQR o estrictamente por encima de Q3 + 1.5·IQR.
// Una serie vacía es entrada inválida; una serie constante no tiene outliers.
func Outliers(values []float64) ([]float64, error) {
	low, high, err := fences(values)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0)
	for _, v := range values {
		if v < low || v > high {
			out = append(out, v)
		}
	}
	return out, nil
}

// WithoutOutliers devuelve el complemento de Outliers conservando el orden.
func WithoutOutliers(values []float64) ([]float64, error) {
	low, high, err := fences(values)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= low && v <= high {
			out = append(out, v)
		}
	}
	return out, nil
}

func fences(values []float64) (low, high float64, err error) {
	q1, q3, err := Quartiles(values)
	if err != nil {
		return 0, 0, err
	}
	threshold := iqrFactor * (q3 - q1)
	return q1 - threshold, q3 + threshold, nil
}

// percentile asume sorted ordenado ascendente y no vacío.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
