package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/pricing"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

func change(name, category, base, current, pct string, significant bool) entity.PriceChange {
	return entity.PriceChange{
		StockName:        name,
		UnitName:         "BOTTLE",
		Category:         category,
		BaseCost:         dec(base),
		PreviousCost:     dec(base),
		CurrentCost:      dec(current),
		PercentageChange: dec(pct),
		IsSignificant:    significant,
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+ 16.67% 📈", pricing.FormatPercentage(dec("16.67")))
	assert.Equal(t, "-12.5% 📉", pricing.FormatPercentage(dec("-12.50")))
}

func TestFormatCost_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "1,500.00", pricing.FormatCost(dec("1500")))
	assert.Equal(t, "98,000.50", pricing.FormatCost(dec("98000.5")))
	assert.Equal(t, "120.00", pricing.FormatCost(dec("120")))
}

func TestBuild_FiltraSignificativosYConservaOrden(t *testing.T) {
	uc := pricing.NewReportUseCase(zerolog.Nop())
	records, err := uc.Build(context.Background(), []entity.PriceChange{
		change("ZOBO", entity.CategoryBeverage, "100", "80", "-25", true),
		change("WATER", entity.CategoryBeverage, "100", "101", "0.99", false),
		change("GULDER", entity.CategoryDrinks, "100", "120", "16.67", true),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ZOBO", records[0].StockName)
	assert.Equal(t, "-25% 📉", records[0].PercentageChange)
	assert.False(t, records[0].Rise)
	assert.Equal(t, "GULDER", records[1].StockName)
	assert.Equal(t, "+ 16.67% 📈", records[1].PercentageChange)
	assert.Equal(t, "120.00", records[1].CurrentCostPrice)
	assert.Nil(t, records[1].Forecast)
}

func TestBuild_SinSignificativosNoEjecutaEtapas(t *testing.T) {
	stage := &recordingStage{}
	uc := pricing.NewReportUseCase(zerolog.Nop(), stage)
	records, err := uc.Build(context.Background(), []entity.PriceChange{
		change("WATER", entity.CategoryBeverage, "100", "101", "0.99", false),
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, stage.calls)
}

func TestBuild_EtapasEnOrden(t *testing.T) {
	var order []string
	first := &recordingStage{name: "a", order: &order}
	second := &recordingStage{name: "b", order: &order}
	uc := pricing.NewReportUseCase(zerolog.Nop(), first, second)
	_, err := uc.Build(context.Background(), []entity.PriceChange{
		change("GULDER", entity.CategoryDrinks, "100", "120", "16.67", true),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestBuild_ErrorDeEtapa(t *testing.T) {
	boom := errors.New("boom")
	uc := pricing.NewReportUseCase(zerolog.Nop(), &recordingStage{name: "x", err: boom})
	_, err := uc.Build(context.Background(), []entity.PriceChange{
		change("GULDER", entity.CategoryDrinks, "100", "120", "16.67", true),
	})
	assert.ErrorIs(t, err, boom)
}

func TestForecastStage_SoloCategoriasDePronostico(t *testing.T) {
	fc := &fakeForecaster{results: map[string]*entity.ForecastResult{
		"GULDER": {
			StockName:           "GULDER",
			CurrentWeekEnd:      time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC),
			CurrentWeekForecast: 100,
			ActualIssued:        105,
			AccuracyPct:         105,
			UpcomingWeekEnd:     time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC),
			UpcomingForecast:    110,
			UpcomingLowerCI:     0,
			UpcomingUpperCI:     180,
		},
	}}
	uc := pricing.NewReportUseCase(zerolog.Nop(), pricing.NewForecastStage(fc, nil))
	records, err := uc.Build(context.Background(), []entity.PriceChange{
		change("RICE", entity.CategoryFoodItem, "100", "150", "33.33", true),
		change("GULDER", entity.CategoryDrinks, "100", "120", "16.67", true),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GULDER"}, fc.asked)
	assert.Nil(t, records[0].Forecast)
	require.NotNil(t, records[1].Forecast)
	assert.Equal(t, 105.0, records[1].Forecast.ForecastAccuracyPct)
	assert.Equal(t, "2024-08-04", records[1].Forecast.UpcomingWeekEnd)
}

func TestForecastStage_SinResultadoNoAdjunta(t *testing.T) {
	fc := &fakeForecaster{results: map[string]*entity.ForecastResult{}}
	uc := pricing.NewReportUseCase(zerolog.Nop(), pricing.NewForecastStage(fc, entity.NewCategorySet("wine")))
	records, err := uc.Build(context.Background(), []entity.PriceChange{
		change("CHAPMAN", entity.CategoryWine, "100", "120", "16.67", true),
	})
	require.NoError(t, err)
	assert.Nil(t, records[0].Forecast)
	assert.Empty(t, records[0].ForecastSkipped)
}

func TestForecastStage_OmitidoLlevaMotivo(t *testing.T) {
	fc := &fakeForecaster{skipped: map[string]string{"CHAPMAN": "división por cero"}}
	uc := pricing.NewReportUseCase(zerolog.Nop(), pricing.NewForecastStage(fc, entity.NewCategorySet("wine")))
	records, err := uc.Build(context.Background(), []entity.PriceChange{
		change("CHAPMAN", entity.CategoryWine, "100", "120", "16.67", true),
	})
	require.NoError(t, err)
	assert.Nil(t, records[0].Forecast)
	assert.Equal(t, "división por cero", records[0].ForecastSkipped)
}

// ── fakes ──

type recordingStage struct {
	name  string
	calls int
	order *[]string
	err   error
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Apply(_ context.Context, _ []entity.PriceChange, _ []dto.PriceChangeDTO) error {
	s.calls++
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
	return s.err
}

type fakeForecaster struct {
	results map[string]*entity.ForecastResult
	skipped map[string]string
	asked   []string
}

func (f *fakeForecaster) ForecastMany(_ context.Context, stocks []string, _ time.Time) (*entity.ForecastBatch, error) {
	f.asked = append(f.asked, stocks...)
	out := &entity.ForecastBatch{Results: map[string]*entity.ForecastResult{}, Skipped: map[string]string{}}
	for _, s := range stocks {
		if r, ok := f.results[s]; ok {
			out.Results[s] = r
		} else if reason, ok := f.skipped[s]; ok {
			out.Skipped[s] = reason
		}
	}
	return out, nil
}
