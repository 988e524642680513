package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// ReportStage post-proceso de los registros de presentación.
// changes[i] es el cambio del que se derivó records[i]; la etapa modifica records en el lugar.
type ReportStage interface {
	Name() string
	Apply(ctx context.Context, changes []entity.PriceChange, records []dto.PriceChangeDTO) error
}

// ReportUseCase arma la lista de cambios significativos para notificar.
type ReportUseCase struct {
	stages []ReportStage
	log    zerolog.Logger
}

// NewReportUseCase construye el reporte con sus etapas (se ejecutan en el orden dado).
func NewReportUseCase(log zerolog.Logger, stages ...ReportStage) *ReportUseCase {
	return &ReportUseCase{stages: stages, log: log}
}

// Build filtra los cambios significativos, los formatea conservando el orden
// y aplica las etapas de post-proceso.
func (uc *ReportUseCase) Build(ctx context.Context, reporting []entity.PriceChange) ([]dto.PriceChangeDTO, error) {
	changes := make([]entity.PriceChange, 0)
	for _, c := range reporting {
		if c.IsSignificant {
			changes = append(changes, c)
		}
	}
	records := make([]dto.PriceChangeDTO, len(changes))
	for i, c := range changes {
		records[i] = ToDTO(c)
	}
	if len(records) == 0 {
		return records, nil
	}

	for _, st := range uc.stages {
		if err := st.Apply(ctx, changes, records); err != nil {
			return nil, fmt.Errorf("etapa %s: %w", st.Name(), err)
		}
		uc.log.Debug().Str("stage", st.Name()).Int("records", len(records)).Msg("etapa de reporte aplicada")
	}
	return records, nil
}

// ToDTO formatea un cambio para presentación.
func ToDTO(c entity.PriceChange) dto.PriceChangeDTO {
	return dto.PriceChangeDTO{
		StockName:        c.StockName,
		UnitName:         c.UnitName,
		Category:         c.Category,
		BaseCostPrice:    FormatCost(c.BaseCost),
		PrevCostPrice:    FormatCost(c.PreviousCost),
		CurrentCostPrice: FormatCost(c.CurrentCost),
		PercentageChange: FormatPercentage(c.PercentageChange),
		Rise:             c.Rise(),
	}
}
