// Package forecast contiene la agregación semanal de consumos y el modelo aditivo
// (tendencia + estacionalidad) usado para pronosticar demanda.
//
// Convención de semana: lunes 00:00 a domingo 23:59:59, etiquetada por el domingo
// (equivalente al resample "W" / "W-SUN"). Las semanas sin despachos dentro del
// rango observado se rellenan con cero.
package forecast

import (
	"sort"
	"time"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
)

// WeekEnding devuelve el domingo (00:00, misma zona horaria) de la semana que contiene t.
func WeekEnding(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	untilSunday := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, untilSunday)
}

// WeekStarting devuelve el lunes de la semana etiquetada por weekEnd.
func WeekStarting(weekEnd time.Time) time.Time {
	return weekEnd.AddDate(0, 0, -6)
}

// AggregateWeekly suma los despachos por semana y rellena con cero las semanas vacías.
// El resultado está ordenado cronológicamente; vacío si no hay registros.
func AggregateWeekly(records []entity.IssueRecord) []entity.WeeklyUsage {
	if len(records) == 0 {
		return nil
	}
	totals := make(map[time.Time]float64)
	var first, last time.Time
	for i, r := range records {
		week := WeekEnding(r.Date)
		totals[week] += r.Usage
		if i == 0 || week.Before(first) {
			first = week
		}
		if i == 0 || week.After(last) {
			last = week
		}
	}

	var out []entity.WeeklyUsage
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		out = append(out, entity.WeeklyUsage{WeekEnd: w, Usage: totals[w]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekEnd.Before(out[j].WeekEnd) })
	return out
}

// SumBetween suma los despachos con fecha en [from, to] (ambos días inclusive).
func SumBetween(records []entity.IssueRecord, from, to time.Time) float64 {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	until := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	var sum float64
	for _, r := range records {
		if !r.Date.Before(from) && r.Date.Before(until) {
			sum += r.Usage
		}
	}
	return sum
}
