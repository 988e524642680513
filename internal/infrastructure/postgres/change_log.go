package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.PriceChangeLogRepository = (*Store)(nil)

const insertChangeLog = `
	INSERT INTO price_change_log (
		run_id, recorded_at, stock_name, unit_name, category,
		base_cost, previous_cost, current_cost, percentage_change
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id, stock_name) DO NOTHING`

// Append guarda los cambios significativos de una corrida en price_change_log.
// Los costos viajan como NUMERIC gracias al codec de shopspring/decimal.
func (s *Store) Append(ctx context.Context, runID string, at time.Time, changes []entity.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range changes {
		batch.Queue(insertChangeLog,
			runID, at, c.StockName, c.UnitName, c.Category,
			c.BaseCost, c.PreviousCost, c.CurrentCost, c.PercentageChange,
		)
	}
	res := s.q.SendBatch(ctx, batch)
	defer res.Close()
	for _, c := range changes {
		if _, err := res.Exec(); err != nil {
			return domain.External("postgres", fmt.Sprintf("log %s", c.StockName), err)
		}
	}
	return nil
}
