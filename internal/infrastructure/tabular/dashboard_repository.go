package tabular

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepository)(nil)

var dashboardHeader = []string{ColCatalogName, ColDashUnitName, ColDashBaseCost, ColDashPrevCost, ColDashCurrCost}

// DashboardRepository reescribe el tablero de costos con la vista de persistencia.
type DashboardRepository struct {
	store ports.TableStore
	table string
}

// NewDashboardRepository crea el repositorio del tablero.
func NewDashboardRepository(store ports.TableStore, tables Tables) *DashboardRepository {
	return &DashboardRepository{store: store, table: tables.Dashboard}
}

func (r *DashboardRepository) Publish(ctx context.Context, rows []entity.PriceChange) error {
	return r.store.WriteAll(ctx, r.table, EncodeDashboard(r.table, rows))
}

// EncodeDashboard arma la tabla del tablero.
func EncodeDashboard(name string, rows []entity.PriceChange) *ports.Table {
	t := &ports.Table{Name: name, Header: append([]string(nil), dashboardHeader...), Rows: make([][]string, len(rows))}
	for i, r := range rows {
		t.Rows[i] = []string{
			r.StockName,
			r.UnitName,
			formatDecimal(r.BaseCost),
			formatDecimal(r.PreviousCost),
			formatDecimal(r.CurrentCost),
		}
	}
	return t
}
