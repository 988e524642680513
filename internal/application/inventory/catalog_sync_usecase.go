package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// SyncPlan tablas de costos y cambios semanales con los stocks nuevos ya agregados.
// Se calcula en memoria; el pipeline lo escribe junto con el resto de las tablas.
type SyncPlan struct {
	Base      []entity.CostEntry
	Previous  []entity.CostEntry
	Current   []entity.CostEntry
	Weekly    *entity.WeeklyChanges
	NewStocks []string // nuevos en base o previous, ordenados
}

// Changed indica si hubo altas.
func (p *SyncPlan) Changed() bool { return len(p.NewStocks) > 0 }

// CatalogSyncUseCase da de alta en base, previous y cambios semanales los stocks que
// aparecen por primera vez en la tabla de costos actuales.
type CatalogSyncUseCase struct {
	costs  repository.CostRepository
	weekly repository.WeeklyChangeRepository
}

// NewCatalogSyncUseCase construye el caso de uso.
func NewCatalogSyncUseCase(costs repository.CostRepository, weekly repository.WeeklyChangeRepository) *CatalogSyncUseCase {
	return &CatalogSyncUseCase{costs: costs, weekly: weekly}
}

// Plan lee las tablas y agrega los stocks nuevos con qty, costo e importe actuales
// (tasa base = costo actual en cambios semanales). Las tablas quedan ordenadas por nombre.
func (uc *CatalogSyncUseCase) Plan(ctx context.Context) (*SyncPlan, error) {
	current, err := uc.costs.List(ctx, entity.CostSourceCurrent)
	if err != nil {
		return nil, fmt.Errorf("leer costos actuales: %w", err)
	}
	base, err := uc.costs.List(ctx, entity.CostSourceBase)
	if err != nil {
		return nil, fmt.Errorf("leer costos base: %w", err)
	}
	previous, err := uc.costs.List(ctx, entity.CostSourcePrevious)
	if err != nil {
		return nil, fmt.Errorf("leer costos previos: %w", err)
	}
	weekly, err := uc.weekly.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer cambios semanales: %w", err)
	}

	added := make(map[string]struct{})
	plan := &SyncPlan{Current: current, Weekly: weekly}
	plan.Base = appendMissing(base, current, added)
	plan.Previous = appendMissing(previous, current, added)

	seen := make(map[string]struct{})
	for _, c := range current {
		if _, dup := seen[c.StockName]; dup {
			continue
		}
		seen[c.StockName] = struct{}{}
		if !weekly.Has(c.StockName) {
			weekly.Append(c.StockName, c.CostPrice)
			added[c.StockName] = struct{}{}
		}
	}
	weekly.SortByName()

	for name := range added {
		plan.NewStocks = append(plan.NewStocks, name)
	}
	sort.Strings(plan.NewStocks)
	return plan, nil
}

// appendMissing devuelve table más los stocks de current que no tiene, ordenado por nombre.
func appendMissing(table, current []entity.CostEntry, added map[string]struct{}) []entity.CostEntry {
	known := make(map[string]struct{}, len(table))
	out := make([]entity.CostEntry, 0, len(table))
	for _, e := range table {
		known[e.StockName] = struct{}{}
		out = append(out, e)
	}
	for _, c := range current {
		if _, ok := known[c.StockName]; ok {
			continue
		}
		known[c.StockName] = struct{}{}
		added[c.StockName] = struct{}{}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StockName < out[j].StockName })
	return out
}
