package entity

import "github.com/shopspring/decimal"

// StockItem representa un ítem del catálogo de stock ("My Stock").
// UnitName es el nombre de la porción con la que se despacha (ej. "BOTTLE", "PLATE").
type StockItem struct {
	Name      string // clave única
	UnitName  string
	Category  string
	BundleQty decimal.Decimal
}
