package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/application/inventory"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

func issues(name, category string, n int) []entity.IssueRecord {
	out := make([]entity.IssueRecord, n)
	for i := range out {
		out[i] = entity.IssueRecord{StockName: name, Category: category, Date: time.Date(2024, 7, 1+i, 0, 0, 0, 0, time.UTC), Usage: 1}
	}
	return out
}

func TestSelectRelevant_TopNMasBebidasMasFijos(t *testing.T) {
	var all []entity.IssueRecord
	all = append(all, issues("RICE", entity.CategoryFoodItem, 5)...)
	all = append(all, issues("BEANS", entity.CategoryFoodItem, 4)...)
	all = append(all, issues("SOAP", entity.CategoryCleaningSupply, 1)...)
	all = append(all, issues("GULDER", entity.CategoryDrinks, 1)...)
	all = append(all, issues("PEN", "STATIONERY", 50)...)
	all = append(all, issues("ZAGG CAN", entity.CategoryDrinks, 40)...)

	cfg := inventory.DefaultRelevanceConfig()
	cfg.TopN = 2
	cfg.AlwaysInclude = []string{"CAT FISH"}

	got := inventory.SelectRelevant(all, cfg)
	assert.Equal(t, []string{"BEANS", "CAT FISH", "GULDER", "RICE"}, got)
}

func TestSelectRelevant_EmpatesPorNombre(t *testing.T) {
	var all []entity.IssueRecord
	for _, n := range []string{"C", "A", "B"} {
		all = append(all, issues(n, entity.CategoryBite, 2)...)
	}
	cfg := inventory.RelevanceConfig{TopN: 2, VitalCategories: []string{entity.CategoryBite}}
	assert.Equal(t, []string{"A", "B"}, inventory.SelectRelevant(all, cfg))
}

func TestSelectRelevant_OrdenadoYSinDuplicados(t *testing.T) {
	all := issues("GULDER", entity.CategoryDrinks, 3)
	cfg := inventory.DefaultRelevanceConfig()
	cfg.AlwaysInclude = []string{"GULDER", "AMSTEL"}
	assert.Equal(t, []string{"AMSTEL", "GULDER"}, inventory.SelectRelevant(all, cfg))
}

func TestRelevant_LeeDespachos(t *testing.T) {
	repo := &memoryMovements{issues: issues("RICE", "food item", 2)}
	uc := inventory.NewRelevanceUseCase(repo, inventory.RelevanceConfig{
		VitalCategories: []string{entity.CategoryFoodItem},
	})
	got, err := uc.Relevant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"RICE"}, got)
}

func TestRelevant_ErrorDeLectura(t *testing.T) {
	repo := &memoryMovements{err: fmt.Errorf("sheets caído")}
	_, err := inventory.NewRelevanceUseCase(repo, inventory.DefaultRelevanceConfig()).Relevant(context.Background())
	assert.ErrorContains(t, err, "sheets caído")
}

type memoryMovements struct {
	issues []entity.IssueRecord
	err    error
}

func (m *memoryMovements) ListIssues(context.Context) ([]entity.IssueRecord, error) {
	return m.issues, m.err
}

func (m *memoryMovements) ListPurchases(context.Context) ([]entity.PurchaseRecord, error) {
	return nil, m.err
}
