package repository

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de lectura de despachos y compras.
type InventoryMovementRepository interface {
	ListIssues(ctx context.Context) ([]entity.IssueRecord, error)
	ListPurchases(ctx context.Context) ([]entity.PurchaseRecord, error)
}
