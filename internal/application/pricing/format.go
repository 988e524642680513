package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	riseIndicator = "📈"
	fallIndicator = "📉"
)

var costPrinter = message.NewPrinter(language.English)

// FormatCost formatea un costo con separador de miles y 2 decimales, ej. "1,500.00".
func FormatCost(v decimal.Decimal) string {
	return costPrinter.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// FormatPercentage devuelve "+ 16.67% 📈" para alzas y "-12.5% 📉" para bajas.
func FormatPercentage(pct decimal.Decimal) string {
	if pct.IsPositive() {
		return "+ " + pct.String() + "% " + riseIndicator
	}
	return pct.String() + "% " + fallIndicator
}
