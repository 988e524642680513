package repository

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// WeeklyChangeRepository define el puerto de persistencia de la hoja de cambios semanales.
type WeeklyChangeRepository interface {
	Load(ctx context.Context) (*entity.WeeklyChanges, error)
	Save(ctx context.Context, sheet *entity.WeeklyChanges) error
}
