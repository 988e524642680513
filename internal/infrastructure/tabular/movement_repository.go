package tabular

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepository)(nil)

// MovementRepository lee las hojas "Issues" y "Purchases".
type MovementRepository struct {
	store  ports.TableStore
	tables Tables
}

// NewMovementRepository crea el repositorio de movimientos.
func NewMovementRepository(store ports.TableStore, tables Tables) *MovementRepository {
	return &MovementRepository{store: store, tables: tables}
}

func (r *MovementRepository) ListIssues(ctx context.Context) ([]entity.IssueRecord, error) {
	t, err := r.store.ReadAll(ctx, r.tables.Issues)
	if err != nil {
		return nil, err
	}
	rd, err := newReader(t, ColDate, ColItemName, ColCategory, ColUsage)
	if err != nil {
		return nil, err
	}
	out := make([]entity.IssueRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		if emptyRow(row) {
			continue
		}
		date, err := rd.date(i, ColDate)
		if err != nil {
			return nil, err
		}
		usage, err := rd.float(i, ColUsage)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.IssueRecord{
			StockName: rd.cell(i, ColItemName),
			Category:  entity.NormalizeCategory(rd.cell(i, ColCategory)),
			Date:      date,
			Usage:     usage,
		})
	}
	return out, nil
}

func (r *MovementRepository) ListPurchases(ctx context.Context) ([]entity.PurchaseRecord, error) {
	t, err := r.store.ReadAll(ctx, r.tables.Purchases)
	if err != nil {
		return nil, err
	}
	rd, err := newReader(t, ColDate, ColStockName, ColRate)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PurchaseRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		if emptyRow(row) {
			continue
		}
		date, err := rd.date(i, ColDate)
		if err != nil {
			return nil, err
		}
		rate, err := rd.decimal(i, ColRate, false)
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
		out = append(out, entity.PurchaseRecord{
			StockName: rd.cell(i, ColStockName),
			Date:      date,
			Rate:      rate,
			Quantity:  qty,
			Amount:    amount,
		})
	}
	return out, nil
}
