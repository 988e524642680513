package pricing

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	domainpricing "github.com/kemaxx/InventoryInsights/internal/domain/pricing"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

const (
	// movingAverageWindow cantidad de compras del promedio móvil ("3 semanas" de compras diarias).
	movingAverageWindow = 21
	insightDeviation    = 0.10
)

var insightTemplates = []string{
	"The current price of %s is higher than the 3-week average, suggesting an upward trend. To mitigate future price increases and ensure customer supply, we should consider stocking up now.",
	"%s is currently more expensive than its rolling three-week average, which could indicate a price hike. In order to lessen this, inventory needs should be evaluated while taking demand, storage capacity, and budgetary restrictions into account.",
	"The price of %s is currently higher than its three-week moving average from the preceding three weeks, suggesting a possible price increase. It would be prudent to assess inventory requirements at this time, keeping in mind demand, storage capacity, and financial constraints. Now would be a good time to stock up.",
	"The current price of %s is higher than its previous rolling average, indicating a potential price increase. To protect against future price increases, we should evaluate inventory needs and consider restocking, considering factors like demand, storage capacity, and budget.",
}

// InsightUseCase compara el costo actual con el promedio móvil de compras sin outliers.
type InsightUseCase struct{}

// NewInsightUseCase construye el caso de uso.
func NewInsightUseCase() *InsightUseCase { return &InsightUseCase{} }

// Insight devuelve el texto de insight si current supera en 10 % o más el promedio móvil
// de las últimas 21 tasas (sin outliers). Con menos de 21 tasas limpias no hay insight.
// La plantilla se elige por hash del nombre para que la salida sea reproducible.
func (uc *InsightUseCase) Insight(stock string, current decimal.Decimal, rates []float64) (string, bool) {
	if len(rates) == 0 {
		return "", false
	}
	clean, err := domainpricing.WithoutOutliers(rates)
	if err != nil {
		return "", false
	}
	mean, ok := domainpricing.RollingMeanLast(clean, movingAverageWindow)
	if !ok || mean <= 0 {
		return "", false
	}
	cur := current.InexactFloat64()
	if cur <= mean || cur/mean-1 < insightDeviation {
		return "", false
	}
	return fmt.Sprintf(insightTemplates[templateIndex(stock)], stock), true
}

func templateIndex(stock string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(stock))
	return int(h.Sum32() % uint32(len(insightTemplates)))
}

// InsightStage adjunta insights a los registros de las categorías indicadas (DRINKS y WINE por defecto).
type InsightStage struct {
	insights   *InsightUseCase
	movements  repository.InventoryMovementRepository
	categories entity.CategorySet
}

// NewInsightStage construye la etapa de insights.
func NewInsightStage(uc *InsightUseCase, movements repository.InventoryMovementRepository, categories entity.CategorySet) *InsightStage {
	if len(categories) == 0 {
		categories = entity.NewCategorySet(entity.CategoryDrinks, entity.CategoryWine)
	}
	return &InsightStage{insights: uc, movements: movements, categories: categories}
}

func (s *InsightStage) Name() string { return "insight" }

func (s *InsightStage) Apply(ctx context.Context, changes []entity.PriceChange, records []dto.PriceChangeDTO) error {
	wanted := false
	for _, c := range changes {
		if s.categories.Has(c.Category) {
			wanted = true
			break
		}
	}
	if !wanted {
		return nil
	}
	purchases, err := s.movements.ListPurchases(ctx)
	if err != nil {
		return fmt.Errorf("leer compras: %w", err)
	}
	rates := ratesByStock(purchases)
	for i, c := range changes {
		if !s.categories.Has(c.Category) {
			continue
		}
		if text, ok := s.insights.Insight(c.StockName, c.CurrentCost, rates[c.StockName]); ok {
			records[i].Insight = text
		}
	}
	return nil
}

// ratesByStock agrupa las tasas de compra por stock en orden cronológico.
func ratesByStock(purchases []entity.PurchaseRecord) map[string][]float64 {
	sorted := make([]entity.PurchaseRecord, len(purchases))
	copy(sorted, purchases)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	out := make(map[string][]float64)
	for _, p := range sorted {
		out[p.StockName] = append(out[p.StockName], p.Rate.InexactFloat64())
	}
	return out
}
