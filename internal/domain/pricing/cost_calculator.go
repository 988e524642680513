package pricing

import (
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultThresholdPct es el umbral de significancia por defecto (10 %).
var DefaultThresholdPct = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

// PercentageChange calcula la variación porcentual del costo respecto al costo actual
// (servicio de dominio, sin efectos secundarios).
// Variacion = (Actual - Base) * 100 / Actual, redondeado a 2 decimales.
// Actual == 0 devuelve *domain.DivisionByZeroError.
func PercentageChange(stock string, base, current decimal.Decimal) (decimal.Decimal, error) {
	if current.IsZero() {
		return decimal.Zero, &domain.DivisionByZeroError{Stock: stock, Op: "percentage_change"}
	}
	return current.Sub(base).Mul(hundred).Div(current).Round(2), nil
}

// IsSignificant aplica la comparación estricta: > umbral o < -umbral.
// Exactamente ±umbral no es significativo.
func IsSignificant(pct, threshold decimal.Decimal) bool {
	return pct.GreaterThan(threshold) || pct.LessThan(threshold.Neg())
}
