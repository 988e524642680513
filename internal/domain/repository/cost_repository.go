package repository

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// CostRepository define el puerto de persistencia para las tablas de costos.
// source es una de entity.CostSourceBase, CostSourcePrevious o CostSourceCurrent.
type CostRepository interface {
	// List devuelve las filas en el orden de la tabla.
	List(ctx context.Context, source string) ([]entity.CostEntry, error)
	// Replace reescribe la tabla completa.
	Replace(ctx context.Context, source string, entries []entity.CostEntry) error
}
