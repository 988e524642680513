package entity

import "strings"

// Categorías de stock tal como aparecen en el catálogo.
const (
	CategoryDrinks         = "DRINKS"
	CategoryWine           = "WINE"
	CategoryFoodItem       = "FOOD ITEM"
	CategoryBite           = "BITE"
	CategoryBeverage       = "BEVERAGE"
	CategoryCleaningSupply = "CLEANING SUPPLY"
	CategoryGuestSupply    = "GUEST SUPPLY"
)

// CategorySet conjunto de categorías normalizadas (mayúsculas, sin espacios extremos).
type CategorySet map[string]struct{}

// NewCategorySet construye el conjunto a partir de una lista.
func NewCategorySet(categories ...string) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[NormalizeCategory(c)] = struct{}{}
	}
	return s
}

// Has indica si la categoría pertenece al conjunto.
func (s CategorySet) Has(category string) bool {
	_, ok := s[NormalizeCategory(category)]
	return ok
}

// NormalizeCategory aplica la misma normalización que el catálogo.
func NormalizeCategory(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
