package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateColumnPrefix prefijo de las columnas por fecha de la hoja "Weekly Changes".
const DateColumnPrefix = "Date_"

// DateColumn nombre de la columna de una corrida, ej. "Date_2024-07-28".
func DateColumn(t time.Time) string {
	return DateColumnPrefix + t.Format("2006-01-02")
}

// WeeklyChangeRow fila de la hoja de cambios semanales.
// Rates guarda el costo registrado por columna de fecha; una columna ausente queda vacía.
type WeeklyChangeRow struct {
	StockName string
	BaseRate  decimal.Decimal
	Rates     map[string]decimal.Decimal
}

// WeeklyChanges hoja completa: columnas de fecha en orden de aparición y filas.
type WeeklyChanges struct {
	Columns []string
	Rows    []WeeklyChangeRow
}

// Has indica si el stock ya tiene fila.
func (w *WeeklyChanges) Has(stock string) bool {
	return w.index(stock) >= 0
}

// Append agrega una fila nueva con su tasa base.
func (w *WeeklyChanges) Append(stock string, baseRate decimal.Decimal) {
	w.Rows = append(w.Rows, WeeklyChangeRow{StockName: stock, BaseRate: baseRate})
}

// Record escribe la columna indicada con el costo de cada stock.
// Un stock sin fila se agrega con tasa base igual al costo registrado.
func (w *WeeklyChanges) Record(column string, costs []PriceChange) {
	if !w.hasColumn(column) {
		w.Columns = append(w.Columns, column)
	}
	for _, c := range costs {
		i := w.index(c.StockName)
		if i < 0 {
			w.Append(c.StockName, c.CurrentCost)
			i = len(w.Rows) - 1
		}
		if w.Rows[i].Rates == nil {
			w.Rows[i].Rates = make(map[string]decimal.Decimal)
		}
		w.Rows[i].Rates[column] = c.CurrentCost
	}
}

// SortByName ordena las filas por nombre de stock.
func (w *WeeklyChanges) SortByName() {
	sort.SliceStable(w.Rows, func(i, j int) bool { return w.Rows[i].StockName < w.Rows[j].StockName })
}

func (w *WeeklyChanges) hasColumn(column string) bool {
	for _, c := range w.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (w *WeeklyChanges) index(stock string) int {
	for i, r := range w.Rows {
		if r.StockName == stock {
			return i
		}
	}
	return -1
}
