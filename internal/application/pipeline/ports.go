package pipeline

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// WriteSet repositorios de escritura atados a una misma transacción (si el almacén la soporta).
type WriteSet struct {
	Costs     repository.CostRepository
	Weekly    repository.WeeklyChangeRepository
	Dashboard repository.DashboardRepository
	ChangeLog repository.PriceChangeLogRepository // nil si el almacén no guarda historial
}

// TxRunner ejecuta las escrituras de una corrida. Con Postgres es una transacción;
// con Sheets o XLSX las escrituras van en secuencia.
type TxRunner interface {
	Run(ctx context.Context, fn func(w WriteSet) error) error
}
