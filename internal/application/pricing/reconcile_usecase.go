// Package pricing contiene los casos de uso de conciliación de costos, reporte de
// cambios significativos e insights sobre precios de compra.
package pricing

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	domainpricing "github.com/kemaxx/InventoryInsights/internal/domain/pricing"
)

// ReconcileInput tablas de costos en el orden en que se leyeron.
// Relevant nil significa sin filtro; un conjunto vacío no deja pasar ningún stock.
type ReconcileInput struct {
	Base     []entity.CostEntry
	Previous []entity.CostEntry
	Current  []entity.CostEntry
	Relevant map[string]struct{}
	Catalog  map[string]entity.StockItem // nombre de unidad y categoría por stock
}

// ReconcileResult vista de reporte (base original) y vista de persistencia (base rebasada).
// Ambas conservan el orden de la tabla base.
type ReconcileResult struct {
	Reporting   []entity.PriceChange
	Persistence []entity.PriceChange
	Dropped     []domain.MissingDataError
}

// Significant devuelve las filas significativas de la vista de reporte.
func (r *ReconcileResult) Significant() []entity.PriceChange {
	out := make([]entity.PriceChange, 0)
	for _, p := range r.Reporting {
		if p.IsSignificant {
			out = append(out, p)
		}
	}
	return out
}

// DroppedNames nombres de los stocks descartados por el inner join.
func (r *ReconcileResult) DroppedNames() []string {
	names := make([]string, len(r.Dropped))
	for i, d := range r.Dropped {
		names[i] = d.Stock
	}
	return names
}

// ReconcileUseCase une base, previous y current y clasifica los cambios.
type ReconcileUseCase struct {
	thresholdPct decimal.Decimal
	log          zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso con el umbral de significancia (porcentaje).
func NewReconcileUseCase(thresholdPct decimal.Decimal, log zerolog.Logger) *ReconcileUseCase {
	if thresholdPct.IsZero() {
		thresholdPct = domainpricing.DefaultThresholdPct
	}
	return &ReconcileUseCase{thresholdPct: thresholdPct, log: log}
}

// Reconcile produce un registro por stock presente en las tres fuentes y en el conjunto relevante.
// Los relevantes ausentes de alguna fuente se descartan, se registran en Dropped y en el log.
// Un costo actual cero devuelve *domain.DivisionByZeroError; un costo negativo *domain.DataShapeError.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	previous := firstByName(in.Previous)
	current := firstByName(in.Current)

	relevant := func(name string) bool {
		if in.Relevant == nil {
			return true
		}
		_, ok := in.Relevant[name]
		return ok
	}

	res := &ReconcileResult{
		Reporting:   make([]entity.PriceChange, 0),
		Persistence: make([]entity.PriceChange, 0),
	}
	inBase := make(map[string]struct{}, len(in.Base))
	for _, b := range in.Base {
		if _, dup := inBase[b.StockName]; dup {
			continue
		}
		inBase[b.StockName] = struct{}{}
		if !relevant(b.StockName) {
			continue
		}
		p, okP := previous[b.StockName]
		c, okC := current[b.StockName]
		if !okP || !okC {
			continue
		}
		costs := []struct {
			source string
			cost   decimal.Decimal
		}{
			{entity.CostSourceBase, b.CostPrice},
			{entity.CostSourcePrevious, p.CostPrice},
			{entity.CostSourceCurrent, c.CostPrice},
		}
		for _, sc := range costs {
			if sc.cost.IsNegative() {
				return nil, &domain.DataShapeError{
					Table:  sc.source,
					Column: "Cost price",
					Reason: fmt.Sprintf("costo negativo %s para %q", sc.cost, b.StockName),
				}
			}
		}

		pct, err := domainpricing.PercentageChange(b.StockName, b.CostPrice, c.CostPrice)
		if err != nil {
			return nil, err
		}
		item := in.Catalog[b.StockName]
		change := entity.PriceChange{
			StockName:        b.StockName,
			UnitName:         item.UnitName,
			Category:         entity.NormalizeCategory(item.Category),
			BaseCost:         b.CostPrice,
			PreviousCost:     p.CostPrice,
			CurrentCost:      c.CostPrice,
			PercentageChange: pct,
			IsSignificant:    domainpricing.IsSignificant(pct, uc.thresholdPct),
		}
		res.Reporting = append(res.Reporting, change)
		res.Persistence = append(res.Persistence, change.Rebased())
	}

	res.Dropped = missing(in, inBase, previous, current, relevant)
	if len(res.Dropped) > 0 {
		uc.log.Warn().
			Int("count", len(res.Dropped)).
			Strs("stocks", res.DroppedNames()).
			Msg("stocks relevantes descartados: ausentes en alguna fuente de costos")
	}
	return res, nil
}

// missing lista, ordenado por nombre, cada stock relevante que falta en al menos una fuente.
func missing(
	in ReconcileInput,
	base map[string]struct{},
	previous, current map[string]entity.CostEntry,
	relevant func(string) bool,
) []domain.MissingDataError {
	candidates := make(map[string]struct{})
	if in.Relevant != nil {
		candidates = in.Relevant
	} else {
		for name := range base {
			candidates[name] = struct{}{}
		}
		for name := range previous {
			candidates[name] = struct{}{}
		}
		for name := range current {
			candidates[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		if relevant(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []domain.MissingDataError
	for _, name := range names {
		var sources []string
		if _, ok := base[name]; !ok {
			sources = append(sources, entity.CostSourceBase)
		}
		if _, ok := previous[name]; !ok {
			sources = append(sources, entity.CostSourcePrevious)
		}
		if _, ok := current[name]; !ok {
			sources = append(sources, entity.CostSourceCurrent)
		}
		if len(sources) > 0 {
			out = append(out, domain.MissingDataError{Stock: name, Sources: sources})
		}
	}
	return out
}

// firstByName indexa por nombre conservando la primera fila de cada stock.
func firstByName(entries []entity.CostEntry) map[string]entity.CostEntry {
	m := make(map[string]entity.CostEntry, len(entries))
	for _, e := range entries {
		if _, ok := m[e.StockName]; !ok {
			m[e.StockName] = e
		}
	}
	return m
}
