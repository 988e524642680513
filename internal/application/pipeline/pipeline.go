// Package pipeline orquesta una corrida completa: alta de stocks nuevos, selección de
// relevantes, conciliación, reporte, notificación y escrituras.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/inventory"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/application/pricing"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

// Nombres de las escrituras en RunSummary.Written.
const (
	WriteBase      = "base"
	WriteDashboard = "dashboard"
	WriteWeekly    = "weekly"
	WritePrevious  = "previous"
	WriteChangeLog = "price_change_log"
)

const runLockKey = "pricewatch:run"

// RunOptions opciones de una corrida.
type RunOptions struct {
	DryRun bool
}

// Deps colaboradores del pipeline. Locker, Metrics, Renderer y Archiver son opcionales.
type Deps struct {
	Sync       *inventory.CatalogSyncUseCase
	Relevance  *inventory.RelevanceUseCase
	Catalog    repository.StockCatalogRepository
	Reconcile  *pricing.ReconcileUseCase
	Report     *pricing.ReportUseCase
	Notifier   ports.Notifier
	Recipients []string
	Tx         TxRunner

	Locker   ports.RunLocker
	LockTTL  time.Duration
	Metrics  ports.RunMetrics
	Renderer ports.ReportRenderer
	Archiver ports.ReportArchiver
}

// Pipeline corrida periódica de control de costos.
type Pipeline struct {
	deps Deps
	log  zerolog.Logger
	now  func() time.Time
}

// New construye el pipeline.
func New(deps Deps, log zerolog.Logger) *Pipeline {
	if deps.LockTTL <= 0 {
		deps.LockTTL = 30 * time.Minute
	}
	return &Pipeline{deps: deps, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (fecha de la columna semanal y marcas de tiempo).
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run ejecuta la corrida. Todo se calcula antes de notificar y de escribir; un error en
// cualquier etapa previa aborta sin escrituras. DryRun no notifica ni escribe.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (summary *dto.RunSummary, err error) {
	started := p.now()
	summary = &dto.RunSummary{RunID: uuid.NewString(), StartedAt: started, DryRun: opts.DryRun}
	log := p.log.With().Str("run_id", summary.RunID).Bool("dry_run", opts.DryRun).Logger()
	log.Info().Msg("iniciando corrida")

	stats := ports.RunStats{DryRun: opts.DryRun}
	defer func() {
		stats.Failed = err != nil
		stats.DurationSecs = p.now().Sub(started).Seconds()
		p.publish(ctx, log, stats)
	}()

	if p.deps.Locker != nil && !opts.DryRun {
		release, lockErr := p.deps.Locker.Acquire(ctx, runLockKey, p.deps.LockTTL)
		if lockErr != nil {
			return nil, lockErr
		}
		defer func() {
			if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
				log.Warn().Err(relErr).Msg("no se pudo liberar el candado de corrida")
			}
		}()
	}

	plan, err := p.deps.Sync.Plan(ctx)
	if err != nil {
		return nil, fmt.Errorf("alta de stocks nuevos: %w", err)
	}
	summary.NewStocks = plan.NewStocks
	stats.NewStocks = len(plan.NewStocks)
	if plan.Changed() {
		log.Info().Strs("stocks", plan.NewStocks).Msg("stocks nuevos agregados a las tablas de costos")
	}

	relevant, err := p.deps.Relevance.Relevant(ctx)
	if err != nil {
		return nil, fmt.Errorf("stocks relevantes: %w", err)
	}
	summary.Relevant = len(relevant)

	catalog, err := p.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	res, err := p.deps.Reconcile.Reconcile(ctx, pricing.ReconcileInput{
		Base:     plan.Base,
		Previous: plan.Previous,
		Current:  plan.Current,
		Relevant: toSet(relevant),
		Catalog:  catalog,
	})
	if err != nil {
		return nil, fmt.Errorf("conciliar costos: %w", err)
	}
	summary.Reconciled = len(res.Reporting)
	summary.Dropped = res.DroppedNames()
	stats.Reconciled = len(res.Reporting)
	stats.Dropped = len(res.Dropped)

	records, err := p.deps.Report.Build(ctx, res.Reporting)
	if err != nil {
		return nil, fmt.Errorf("armar reporte: %w", err)
	}
	summary.Significant = records
	stats.Significant = len(records)
	for _, r := range records {
		if r.Forecast != nil {
			stats.Forecasted++
		}
		if r.ForecastSkipped != "" {
			summary.ForecastSkipped = append(summary.ForecastSkipped, r.StockName)
		}
	}
	stats.ForecastSkip = len(summary.ForecastSkipped)
	if len(summary.ForecastSkipped) > 0 {
		log.Warn().Strs("stocks", summary.ForecastSkipped).Msg("stocks sin pronóstico")
	}
	log.Info().
		Int("relevant", summary.Relevant).
		Int("reconciled", summary.Reconciled).
		Int("significant", len(records)).
		Msg("cambios calculados")

	if opts.DryRun {
		summary.FinishedAt = p.now()
		return summary, nil
	}

	if len(records) > 0 {
		if err := p.deps.Notifier.Notify(ctx, records, p.deps.Recipients); err != nil {
			return nil, fmt.Errorf("notificar: %w", err)
		}
		summary.Notified = true
		log.Info().Int("recipients", len(p.deps.Recipients)).Msg("notificación enviada")
	} else {
		log.Info().Msg("sin cambios significativos: no se notifica")
	}

	significant := res.Significant()
	written, err := p.writeBack(ctx, plan, res, significant, summary.RunID, started)
	if err != nil {
		return nil, fmt.Errorf("escrituras: %w", err)
	}
	summary.Written = written
	summary.FinishedAt = p.now()

	p.archive(ctx, log, summary)
	log.Info().Strs("written", written).Msg("corrida finalizada")
	return summary, nil
}

// writeBack escribe, en orden: base rebasada, tablero, columna semanal, previous ← current
// y el historial si el almacén lo soporta.
func (p *Pipeline) writeBack(
	ctx context.Context,
	plan *inventory.SyncPlan,
	res *pricing.ReconcileResult,
	significant []entity.PriceChange,
	runID string,
	at time.Time,
) ([]string, error) {
	base := rebase(plan.Base, significant)
	weekly := plan.Weekly
	if len(significant) > 0 {
		weekly.Record(entity.DateColumn(at), significant)
	}

	var written []string
	err := p.deps.Tx.Run(ctx, func(w WriteSet) error {
		written = written[:0]
		if err := w.Costs.Replace(ctx, entity.CostSourceBase, base); err != nil {
			return fmt.Errorf("costos base: %w", err)
		}
		written = append(written, WriteBase)
		if err := w.Dashboard.Publish(ctx, res.Persistence); err != nil {
			return fmt.Errorf("tablero: %w", err)
		}
		written = append(written, WriteDashboard)
		if err := w.Weekly.Save(ctx, weekly); err != nil {
			return fmt.Errorf("cambios semanales: %w", err)
		}
		written = append(written, WriteWeekly)
		if err := w.Costs.Replace(ctx, entity.CostSourcePrevious, plan.Current); err != nil {
			return fmt.Errorf("costos previos: %w", err)
		}
		written = append(written, WritePrevious)
		if w.ChangeLog != nil && len(significant) > 0 {
			if err := w.ChangeLog.Append(ctx, runID, at, significant); err != nil {
				return fmt.Errorf("historial de cambios: %w", err)
			}
			written = append(written, WriteChangeLog)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func (p *Pipeline) loadCatalog(ctx context.Context) (map[string]entity.StockItem, error) {
	items, err := p.deps.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	out := make(map[string]entity.StockItem, len(items))
	for _, it := range items {
		if _, dup := out[it.Name]; !dup {
			out[it.Name] = it
		}
	}
	return out, nil
}

// archive genera el PDF y sube PDF y resumen. Un fallo aquí no invalida la corrida.
func (p *Pipeline) archive(ctx context.Context, log zerolog.Logger, summary *dto.RunSummary) {
	if p.deps.Archiver == nil {
		return
	}
	prefix := fmt.Sprintf("runs/%s/%s", summary.StartedAt.Format("2006-01-02"), summary.RunID)
	if p.deps.Renderer != nil && len(summary.Significant) > 0 {
		pdf, err := p.deps.Renderer.Render(summary)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo generar el PDF")
		} else if url, err := p.deps.Archiver.Archive(ctx, prefix+"/report.pdf", "application/pdf", pdf); err != nil {
			log.Warn().Err(err).Msg("no se pudo archivar el PDF")
		} else {
			summary.ReportURL = url
		}
	}
	body, err := json.Marshal(summary)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo serializar el resumen")
		return
	}
	if _, err := p.deps.Archiver.Archive(ctx, prefix+"/summary.json", "application/json", body); err != nil {
		log.Warn().Err(err).Msg("no se pudo archivar el resumen")
	}
}

func (p *Pipeline) publish(ctx context.Context, log zerolog.Logger, stats ports.RunStats) {
	if p.deps.Metrics == nil {
		return
	}
	p.deps.Metrics.ObserveRun(stats)
	if err := p.deps.Metrics.Push(context.WithoutCancel(ctx)); err != nil {
		log.Warn().Err(err).Msg("no se pudieron publicar las métricas")
	}
}

// rebase reemplaza el costo base por el actual en los stocks con cambio significativo.
func rebase(base []entity.CostEntry, significant []entity.PriceChange) []entity.CostEntry {
	current := make(map[string]entity.PriceChange, len(significant))
	for _, s := range significant {
		current[s.StockName] = s
	}
	out := make([]entity.CostEntry, len(base))
	for i, b := range base {
		if s, ok := current[b.StockName]; ok {
			b.CostPrice = s.CurrentCost
		}
		out[i] = b
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}
