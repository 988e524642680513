package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe los cambios en el log; se usa cuando no hay SMTP configurado.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier crea el notificador de log.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, records []dto.PriceChangeDTO, recipients []string) error {
	for _, r := range records {
		n.log.Info().
			Str("stock", r.StockName).
			Str("base", r.BaseCostPrice).
			Str("previous", r.PrevCostPrice).
			Str("current", r.CurrentCostPrice).
			Str("change", r.PercentageChange).
			Strs("recipients", recipients).
			Msg("cambio de costo significativo")
	}
	return nil
}
