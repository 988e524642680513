package entity

import "github.com/shopspring/decimal"

// Fuentes de costo que participan en la conciliación.
const (
	CostSourceBase     = "base"
	CostSourcePrevious = "previous"
	CostSourceCurrent  = "current"
)

// CostEntry fila de una tabla de costos (Base Cost, Previous Costs, Current Costs).
// Extra guarda las celdas de columnas no canónicas por encabezado; se reescriben tal cual.
type CostEntry struct {
	StockName string
	Qty       decimal.Decimal
	CostPrice decimal.Decimal
	Amount    decimal.Decimal
	Extra     map[string]string
}
