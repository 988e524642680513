package tabular

import (
	"context"
	"fmt"

	"github.com/kemaxx/InventoryInsights/internal/application/pipeline"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// Repositories agrupa los repositorios de dominio sobre un mismo almacén.
type Repositories struct {
	Costs     *CostRepository
	Catalog   *CatalogRepository
	Movements *MovementRepository
	Weekly    *WeeklyRepository
	Dashboard *DashboardRepository
}

// NewRepositories crea todos los repositorios sobre store.
func NewRepositories(store ports.TableStore, tables Tables) *Repositories {
	return &Repositories{
		Costs:     NewCostRepository(store, tables),
		Catalog:   NewCatalogRepository(store, tables),
		Movements: NewMovementRepository(store, tables),
		Weekly:    NewWeeklyRepository(store, tables),
		Dashboard: NewDashboardRepository(store, tables),
	}
}

var _ pipeline.TxRunner = (*TxRunner)(nil)

// TxRunner implementa pipeline.TxRunner. Si el almacén es transaccional las escrituras
// se agrupan con RunInTx; si no, se ejecutan en secuencia sobre el almacén.
type TxRunner struct {
	store  ports.TableStore
	tables Tables
}

// NewTxRunner crea el ejecutor de escrituras.
func NewTxRunner(store ports.TableStore, tables Tables) *TxRunner {
	return &TxRunner{store: store, tables: tables}
}

func (r *TxRunner) Run(ctx context.Context, fn func(w pipeline.WriteSet) error) error {
	txStore, ok := r.store.(ports.TxTableStore)
	if !ok {
		return fn(r.writeSet(r.store))
	}
	if err := txStore.RunInTx(ctx, func(tx ports.TableStore) error {
		return fn(r.writeSet(tx))
	}); err != nil {
		return fmt.Errorf("transacción de escrituras: %w", err)
	}
	return nil
}

func (r *TxRunner) writeSet(store ports.TableStore) pipeline.WriteSet {
	w := pipeline.WriteSet{
		Costs:     NewCostRepository(store, r.tables),
		Weekly:    NewWeeklyRepository(store, r.tables),
		Dashboard: NewDashboardRepository(store, r.tables),
	}
	if log, ok := store.(repository.PriceChangeLogRepository); ok {
		w.ChangeLog = log
	}
	return w
}
