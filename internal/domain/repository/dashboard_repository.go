package repository

import (
	"context"
	"time"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// DashboardRepository publica la vista de persistencia en el tablero de costos.
type DashboardRepository interface {
	Publish(ctx context.Context, rows []entity.PriceChange) error
}

// PriceChangeLogRepository guarda el historial de cambios significativos por corrida.
// Sólo lo implementan los almacenes con soporte transaccional.
type PriceChangeLogRepository interface {
	Append(ctx context.Context, runID string, at time.Time, changes []entity.PriceChange) error
}
