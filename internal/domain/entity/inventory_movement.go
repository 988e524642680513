package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueRecord representa una salida (despacho) registrada en la hoja "Issues".
type IssueRecord struct {
	StockName string
	Category  string
	Date      time.Time
	Usage     float64 // cantidad despachada
}

// PurchaseRecord representa una compra registrada en la hoja "Purchases".
// Rate es el precio unitario pagado; es la serie sobre la que se detectan outliers.
type PurchaseRecord struct {
	StockName string
	Date      time.Time
	Rate      decimal.Decimal
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
}
