// Package forecast contiene el caso de uso de pronóstico semanal de demanda.
package forecast

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	domainforecast "github.com/kemaxx/InventoryInsights/internal/domain/forecast"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// Options parámetros del pronosticador.
type Options struct {
	Workers  int           // pronósticos concurrentes en ForecastMany; <= 0 usa 4
	CacheTTL time.Duration // sólo si hay caché
}

// DemandUseCase agrega despachos por semana, ajusta un modelo nuevo por stock y
// mide la precisión del pronóstico de la última semana observada.
type DemandUseCase struct {
	movements repository.InventoryMovementRepository
	newModel  ports.ModelFactory
	cache     ports.ForecastCache // opcional
	opts      Options
	log       zerolog.Logger
}

// NewDemandUseCase construye el caso de uso. cache puede ser nil.
func NewDemandUseCase(
	movements repository.InventoryMovementRepository,
	newModel ports.ModelFactory,
	cache ports.ForecastCache,
	opts Options,
	log zerolog.Logger,
) *DemandUseCase {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &DemandUseCase{movements: movements, newModel: newModel, cache: cache, opts: opts, log: log}
}

// Forecast pronostica un stock con los despachos hasta asOf (cero = sin límite).
// Menos de dos semanas de historia devuelve domain.ErrInsufficientHistory; un pronóstico
// puntual cero para la semana actual devuelve *domain.DivisionByZeroError.
func (uc *DemandUseCase) Forecast(ctx context.Context, stock string, asOf time.Time) (*entity.ForecastResult, error) {
	issues, err := uc.movements.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer despachos: %w", err)
	}
	return uc.forecast(ctx, stock, byStock(issues, asOf)[stock])
}

// ForecastMany pronostica varios stocks en paralelo (acotado por Options.Workers).
// Los stocks con historial insuficiente o pronóstico cero quedan en Skipped con su motivo;
// cualquier otro error cancela el resto.
func (uc *DemandUseCase) ForecastMany(ctx context.Context, stocks []string, asOf time.Time) (*entity.ForecastBatch, error) {
	issues, err := uc.movements.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer despachos: %w", err)
	}
	grouped := byStock(issues, asOf)

	var mu sync.Mutex
	out := &entity.ForecastBatch{
		Results: make(map[string]*entity.ForecastResult, len(stocks)),
		Skipped: make(map[string]string),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.Workers)
	for _, stock := range stocks {
		records := grouped[stock]
		g.Go(func() error {
			res, err := uc.forecast(gctx, stock, records)
			if errors.Is(err, domain.ErrInsufficientHistory) || errors.Is(err, domain.ErrDivisionByZero) {
				uc.log.Warn().Err(err).Str("stock", stock).Msg("pronóstico omitido")
				mu.Lock()
				out.Skipped[stock] = err.Error()
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			out.Results[stock] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *DemandUseCase) forecast(ctx context.Context, stock string, records []entity.IssueRecord) (*entity.ForecastResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	weeks := domainforecast.AggregateWeekly(records)
	if len(weeks) < 2 {
		return nil, fmt.Errorf("pronóstico de %q con %d semanas: %w", stock, len(weeks), domain.ErrInsufficientHistory)
	}

	version := seriesVersion(weeks)
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, stock, version)
		if err != nil {
			uc.log.Warn().Err(err).Str("stock", stock).Msg("caché de pronósticos no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	points := make([]domainforecast.Point, len(weeks))
	for i, w := range weeks {
		points[i] = domainforecast.Point{Time: w.WeekEnd, Value: w.Usage}
	}
	model := uc.newModel()
	if err := model.Fit(points); err != nil {
		return nil, fmt.Errorf("ajustar modelo de %q: %w", stock, err)
	}
	preds, err := model.Predict(1)
	if err != nil {
		return nil, fmt.Errorf("predecir %q: %w", stock, err)
	}
	n := len(weeks)
	if len(preds) != n+1 {
		return nil, fmt.Errorf("predecir %q: se esperaban %d predicciones, hay %d: %w", stock, n+1, len(preds), domain.ErrInvalidInput)
	}

	last := weeks[n-1].WeekEnd
	current := preds[n-1]
	upcoming := preds[n]

	point := math.Round(current.Point)
	if point == 0 {
		return nil, &domain.DivisionByZeroError{Stock: stock, Op: "forecast_accuracy"}
	}
	actual := domainforecast.SumBetween(records, domainforecast.WeekStarting(last), last)

	res := &entity.ForecastResult{
		StockName:           stock,
		CurrentWeekEnd:      last,
		CurrentWeekForecast: point,
		ActualIssued:        actual,
		AccuracyPct:         round2(actual / point * 100),
		UpcomingWeekEnd:     last.AddDate(0, 0, 7),
		UpcomingForecast:    math.Round(upcoming.Point),
		UpcomingLowerCI:     clampZero(math.Round(upcoming.Lower)),
		UpcomingUpperCI:     clampZero(math.Round(upcoming.Upper)),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, stock, version, res, uc.opts.CacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("stock", stock).Msg("no se pudo guardar pronóstico en caché")
		}
	}
	return res, nil
}

// byStock agrupa los despachos con fecha <= asOf por nombre de stock.
func byStock(issues []entity.IssueRecord, asOf time.Time) map[string][]entity.IssueRecord {
	out := make(map[string][]entity.IssueRecord)
	for _, r := range issues {
		if !asOf.IsZero() && r.Date.After(asOf) {
			continue
		}
		out[r.StockName] = append(out[r.StockName], r)
	}
	return out
}

// seriesVersion identifica la serie semanal para la caché.
func seriesVersion(weeks []entity.WeeklyUsage) string {
	h := fnv.New64a()
	buf := make([]byte, 16)
	for _, w := range weeks {
		binary.LittleEndian.PutUint64(buf[:8], uint64(w.WeekEnd.Unix()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(w.Usage))
		_, _ = h.Write(buf)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
