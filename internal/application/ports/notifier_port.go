package ports

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
)

// Notifier entrega la lista de cambios significativos a los destinatarios.
// El núcleo no reintenta; un error se propaga y la corrida aborta antes de escribir.
type Notifier interface {
	Notify(ctx context.Context, records []dto.PriceChangeDTO, recipients []string) error
}
