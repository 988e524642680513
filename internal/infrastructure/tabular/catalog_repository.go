package tabular

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.StockCatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository lee el catálogo "My Stock".
type CatalogRepository struct {
	store ports.TableStore
	table string
}

// NewCatalogRepository crea el repositorio del catálogo.
func NewCatalogRepository(store ports.TableStore, tables Tables) *CatalogRepository {
	return &CatalogRepository{store: store, table: tables.Catalog}
}

func (r *CatalogRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	t, err := r.store.ReadAll(ctx, r.table)
	if err != nil {
		return nil, err
	}
	rd, err := newReader(t, ColCatalogName, ColPortionName, ColCategory)
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockItem, 0, len(t.Rows))
	for i, row := range t.Rows {
		if emptyRow(row) {
			continue
		}
		bundle, err := rd.decimal(i, ColBundleQty, true)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.StockItem{
			Name:      rd.cell(i, ColCatalogName),
			UnitName:  rd.cell(i, ColPortionName),
			Category:  entity.NormalizeCategory(rd.cell(i, ColCategory)),
			BundleQty: bundle,
		})
	}
	return out, nil
}
