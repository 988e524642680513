// Package inventory contiene los casos de uso sobre el catálogo y el historial de despachos:
// selección de stocks relevantes y alta de stocks nuevos en las tablas de costos.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// RelevanceConfig parámetros de la selección de stocks relevantes.
type RelevanceConfig struct {
	TopN            int
	VitalCategories []string
	ExtraCategories []string // se agregan completas aunque queden fuera del top N
	Exclusions      []string
	AlwaysInclude   []string
}

// DefaultRelevanceConfig valores usados por la operación del hotel.
func DefaultRelevanceConfig() RelevanceConfig {
	return RelevanceConfig{
		TopN: 150,
		VitalCategories: []string{
			entity.CategoryDrinks, entity.CategoryWine, entity.CategoryFoodItem, entity.CategoryBite,
			entity.CategoryBeverage, entity.CategoryCleaningSupply, entity.CategoryGuestSupply,
		},
		ExtraCategories: []string{entity.CategoryDrinks, entity.CategoryWine},
		Exclusions: []string{
			"ORIGIN BITTERS SMALL", "ALBARKA TABLE WATER (50CL)", "FAYROUZ CAN", "PINEAPPLE JUICE DRINK",
			"ACE ROOT", "ZAGG (CAN)", "ZAGG CAN", "VEGETABLE (STAFF)", "TOMATO FLAVOR SEASONING (CUBE)",
		},
		AlwaysInclude: []string{
			"CAT FISH", "CAT FISH (SMALL)", "SWAN WATER", "GOLDBERG BLACK (45cl)", "LEGEND TWIST", "4TH STREET (BIG)",
		},
	}
}

// RelevanceUseCase calcula los stocks sobre los que se vigilan los costos.
type RelevanceUseCase struct {
	movements repository.InventoryMovementRepository
	cfg       RelevanceConfig
}

// NewRelevanceUseCase construye el caso de uso.
func NewRelevanceUseCase(movements repository.InventoryMovementRepository, cfg RelevanceConfig) *RelevanceUseCase {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultRelevanceConfig().TopN
	}
	return &RelevanceUseCase{movements: movements, cfg: cfg}
}

// Relevant devuelve, ordenados y sin repetir: los TopN stocks más despachados de las
// categorías vitales, todos los de las categorías extra y la lista fija.
func (uc *RelevanceUseCase) Relevant(ctx context.Context) ([]string, error) {
	issues, err := uc.movements.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer despachos: %w", err)
	}
	return SelectRelevant(issues, uc.cfg), nil
}

// SelectRelevant aplica la selección sobre despachos ya cargados.
// Los empates en cantidad de despachos se resuelven por nombre.
func SelectRelevant(issues []entity.IssueRecord, cfg RelevanceConfig) []string {
	excluded := make(map[string]struct{}, len(cfg.Exclusions))
	for _, e := range cfg.Exclusions {
		excluded[e] = struct{}{}
	}
	vital := entity.NewCategorySet(cfg.VitalCategories...)
	extra := entity.NewCategorySet(cfg.ExtraCategories...)

	counts := make(map[string]int)
	result := make(map[string]struct{})
	for _, r := range issues {
		if _, skip := excluded[r.StockName]; skip || r.StockName == "" {
			continue
		}
		if !vital.Has(r.Category) {
			continue
		}
		counts[r.StockName]++
		if extra.Has(r.Category) {
			result[r.StockName] = struct{}{}
		}
	}

	ranked := make([]string, 0, len(counts))
	for name := range counts {
		ranked = append(ranked, name)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > cfg.TopN {
		ranked = ranked[:cfg.TopN]
	}
	for _, name := range ranked {
		result[name] = struct{}{}
	}
	for _, name := range cfg.AlwaysInclude {
		result[name] = struct{}{}
	}

	out := make([]string, 0, len(result))
	for name := range result {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
