// Package tabular traduce entre las tablas de texto del almacén (hojas de cálculo,
// libros XLSX o filas JSONB en Postgres) y las entidades de dominio.
package tabular

import (
	"fmt"
	"strings"

	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// Tables nombres de las tablas en el almacén.
type Tables struct {
	Base      string
	Previous  string
	Current   string
	Catalog   string
	Issues    string
	Purchases string
	Weekly    string
	Dashboard string
}

// DefaultTables nombres de las hojas del libro de inventario.
func DefaultTables() Tables {
	return Tables{
		Base:      "Base Cost",
		Previous:  "Previous Costs",
		Current:   "Current Costs",
		Catalog:   "My Stock",
		Issues:    "Issues",
		Purchases: "Purchases",
		Weekly:    "Weekly Changes",
		Dashboard: "Ken's Store",
	}
}

// All devuelve todos los nombres en orden estable.
func (t Tables) All() []string {
	return []string{t.Base, t.Previous, t.Current, t.Catalog, t.Issues, t.Purchases, t.Weekly, t.Dashboard}
}

// Resolve traduce un nombre lógico (base, previous, current, catalog, issues, purchases,
// weekly, dashboard) al nombre físico. Un nombre físico conocido se devuelve tal cual.
func (t Tables) Resolve(name string) (string, error) {
	logical := map[string]string{
		"base": t.Base, "previous": t.Previous, "current": t.Current, "catalog": t.Catalog,
		"issues": t.Issues, "purchases": t.Purchases, "weekly": t.Weekly, "dashboard": t.Dashboard,
	}
	if physical, ok := logical[strings.ToLower(strings.TrimSpace(name))]; ok {
		return physical, nil
	}
	for _, physical := range t.All() {
		if physical == name {
			return physical, nil
		}
	}
	return "", fmt.Errorf("tabla %q: %w", name, domain.ErrNotFound)
}

// ForSource nombre de la tabla de una fuente de costos.
func (t Tables) ForSource(source string) (string, error) {
	switch source {
	case entity.CostSourceBase:
		return t.Base, nil
	case entity.CostSourcePrevious:
		return t.Previous, nil
	case entity.CostSourceCurrent:
		return t.Current, nil
	default:
		return "", fmt.Errorf("fuente de costos desconocida %q", source)
	}
}

// Encabezados de columnas.
const (
	ColStockName    = "Stock name"
	ColQty          = "Qty"
	ColCostPrice    = "Cost price"
	ColAmount       = "Amount"
	ColCatalogName  = "Stock Name"
	ColPortionName  = "Ptn Name"
	ColCategory     = "Category"
	ColBundleQty    = "Bundle Qty"
	ColDate         = "Date"
	ColItemName     = "Item name"
	ColUsage        = "Usage"
	ColRate         = "Rate"
	ColWeeklyName   = "Stock Name"
	ColBaseRate     = "Base Rate"
	ColDashUnitName = "Unit Name"
	ColDashBaseCost = "Base Cost Price (₦)"
	ColDashPrevCost = "Prev Cost Price (₦)"
	ColDashCurrCost = "Current Cost Price (₦)"
)
