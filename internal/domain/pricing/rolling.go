package pricing

import "gonum.org/v1/gonum/stat"

// RollingMeanLast devuelve la media de las últimas `window` observaciones.
// ok es false si hay menos de `window` valores (equivale al NaN de una media móvil incompleta).
func RollingMeanLast(values []float64, window int) (mean float64, ok bool) {
	if window <= 0 || len(values) < window {
		return 0, false
	}
	return stat.Mean(values[len(values)-window:], nil), true
}
