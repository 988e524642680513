package pricing

import (
	"context"
	"time"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// Forecaster calcula pronósticos para varios stocks. Los stocks sin historial suficiente
// no aparecen en Results sino en Skipped.
type Forecaster interface {
	ForecastMany(ctx context.Context, stocks []string, asOf time.Time) (*entity.ForecastBatch, error)
}

// ForecastStage adjunta el bloque de pronóstico a los registros de las categorías indicadas.
// Un stock omitido por el pronosticador lleva el motivo en ForecastSkipped.
type ForecastStage struct {
	forecaster Forecaster
	categories entity.CategorySet
	now        func() time.Time
}

// NewForecastStage construye la etapa; sin categorías usa DRINKS y WINE.
func NewForecastStage(f Forecaster, categories entity.CategorySet) *ForecastStage {
	if len(categories) == 0 {
		categories = entity.NewCategorySet(entity.CategoryDrinks, entity.CategoryWine)
	}
	return &ForecastStage{forecaster: f, categories: categories, now: time.Now}
}

func (s *ForecastStage) Name() string { return "forecast" }

func (s *ForecastStage) Apply(ctx context.Context, changes []entity.PriceChange, records []dto.PriceChangeDTO) error {
	var stocks []string
	for _, c := range changes {
		if s.categories.Has(c.Category) {
			stocks = append(stocks, c.StockName)
		}
	}
	if len(stocks) == 0 {
		return nil
	}
	batch, err := s.forecaster.ForecastMany(ctx, stocks, s.now())
	if err != nil {
		return err
	}
	for i, c := range changes {
		if !s.categories.Has(c.Category) {
			continue
		}
		if r, ok := batch.Results[c.StockName]; ok {
			records[i].Forecast = ForecastToDTO(r)
		} else if reason, ok := batch.Skipped[c.StockName]; ok {
			records[i].ForecastSkipped = reason
		}
	}
	return nil
}

// ForecastToDTO formatea un pronóstico para presentación.
func ForecastToDTO(r *entity.ForecastResult) *dto.ForecastDTO {
	return &dto.ForecastDTO{
		CurrentWeekEnd:      r.CurrentWeekEnd.Format("2006-01-02"),
		CurrentWeekForecast: r.CurrentWeekForecast,
		ActualUnitsIssued:   r.ActualIssued,
		ForecastAccuracyPct: r.AccuracyPct,
		UpcomingWeekEnd:     r.UpcomingWeekEnd.Format("2006-01-02"),
		UpcomingForecast:    r.UpcomingForecast,
		UpcomingLowerCI:     r.UpcomingLowerCI,
		UpcomingUpperCI:     r.UpcomingUpperCI,
	}
}
