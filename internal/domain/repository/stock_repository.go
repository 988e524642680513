package repository

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// StockCatalogRepository define el puerto de lectura del catálogo de stock ("My Stock").
type StockCatalogRepository interface {
	List(ctx context.Context) ([]entity.StockItem, error)
}
