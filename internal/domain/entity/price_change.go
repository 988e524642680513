package entity

import "github.com/shopspring/decimal"

// PriceChange es el CostRecord conciliado de un stock junto con su resultado de significancia.
// PercentageChange = (Current - Base) * 100 / Current, redondeado a 2 decimales.
type PriceChange struct {
	StockName        string
	UnitName         string
	Category         string
	BaseCost         decimal.Decimal
	PreviousCost     decimal.Decimal
	CurrentCost      decimal.Decimal
	PercentageChange decimal.Decimal
	IsSignificant    bool
}

// Rise indica si el cambio es al alza.
func (p PriceChange) Rise() bool { return p.PercentageChange.IsPositive() }

// Rebased devuelve una copia con el costo base reemplazado por el actual si el cambio es significativo.
// El valor original no se modifica.
func (p PriceChange) Rebased() PriceChange {
	if p.IsSignificant {
		p.BaseCost = p.CurrentCost
	}
	return p
}
