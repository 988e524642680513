package tabular

import (
	"context"
	"errors"
	"sort"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.CostRepository = (*CostRepository)(nil)

var costHeader = []string{ColStockName, ColQty, ColCostPrice, ColAmount}

// CostRepository implementa repository.CostRepository sobre un TableStore.
type CostRepository struct {
	store  ports.TableStore
	tables Tables
}

// NewCostRepository crea el repositorio de tablas de costos.
func NewCostRepository(store ports.TableStore, tables Tables) *CostRepository {
	return &CostRepository{store: store, tables: tables}
}

func (r *CostRepository) List(ctx context.Context, source string) ([]entity.CostEntry, error) {
	name, err := r.tables.ForSource(source)
	if err != nil {
		return nil, err
	}
	t, err := r.store.ReadAll(ctx, name)
	if err != nil {
		return nil, err
	}
	return DecodeCosts(t)
}

func (r *CostRepository) Replace(ctx context.Context, source string, entries []entity.CostEntry) error {
	name, err := r.tables.ForSource(source)
	if err != nil {
		return err
	}
	// El encabezado actual fija el orden de las columnas; una tabla nueva usa el canónico.
	var header []string
	old, err := r.store.ReadAll(ctx, name)
	switch {
	case err == nil:
		header = old.Header
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return r.store.WriteAll(ctx, name, EncodeCosts(name, entries, header))
}

// DecodeCosts interpreta una tabla de costos. Qty y Amount son opcionales; Cost price no.
func DecodeCosts(t *ports.Table) ([]entity.CostEntry, error) {
	rd, err := newReader(t, ColStockName, ColCostPrice)
	if err != nil {
		return nil, err
	}
	extraCols := extraColumns(t.Header)
	out := make([]entity.CostEntry, 0, len(t.Rows))
	for i, row := range t.Rows {
		if emptyRow(row) {
			continue
		}
		name := rd.cell(i, ColStockName)
		if name == "" {
			return nil, rd.shapeErr(i, ColStockName, "nombre de stock vacío")
		}
		price, err := rd.decimal(i, ColCostPrice, false)
		if err != nil {
			return nil, err
		}
		qty, err := rd.decimal(i, ColQty, true)
		if err != nil {
			return nil, err
		}
		amount, err := rd.decimal(i, ColAmount, true)
		if err != nil {
			return nil, err
		}
		e := entity.CostEntry{StockName: name, Qty: qty, CostPrice: price, Amount: amount}
		if len(extraCols) > 0 {
			e.Extra = make(map[string]string, len(extraCols))
			for _, col := range extraCols {
				e.Extra[col] = rd.cell(i, col)
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// EncodeCosts arma la tabla de costos. Respeta el orden de header (el encabezado actual de
// la tabla, puede ser nil), completa las columnas canónicas que falten y agrega al final,
// ordenadas, las columnas extra de las filas que header no tenga.
func EncodeCosts(name string, entries []entity.CostEntry, header []string) *ports.Table {
	cols := costColumns(entries, header)
	t := &ports.Table{Name: name, Header: cols, Rows: make([][]string, len(entries))}
	for i, e := range entries {
		row := make([]string, len(cols))
		for j, col := range cols {
			switch col {
			case ColStockName:
				row[j] = e.StockName
			case ColQty:
				row[j] = formatDecimal(e.Qty)
			case ColCostPrice:
				row[j] = formatDecimal(e.CostPrice)
			case ColAmount:
				row[j] = formatDecimal(e.Amount)
			default:
				row[j] = e.Extra[col]
			}
		}
		t.Rows[i] = row
	}
	return t
}

func costColumns(entries []entity.CostEntry, header []string) []string {
	seen := make(map[string]struct{})
	var cols []string
	add := func(c string) {
		if _, ok := seen[c]; ok || c == "" {
			return
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	for _, h := range header {
		add(RepairMojibake(CleanCell(h)))
	}
	for _, c := range costHeader {
		add(c)
	}
	var extra []string
	for _, e := range entries {
		for k := range e.Extra {
			if _, ok := seen[k]; !ok && k != "" {
				seen[k] = struct{}{}
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// extraColumns encabezados no canónicos, en orden, sin vacíos ni duplicados.
func extraColumns(header []string) []string {
	canonical := make(map[string]struct{}, len(costHeader))
	for _, c := range costHeader {
		canonical[c] = struct{}{}
	}
	var out []string
	for _, h := range header {
		name := RepairMojibake(CleanCell(h))
		if _, ok := canonical[name]; ok || name == "" {
			continue
		}
		canonical[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
