// Package bootstrap arma el pipeline y sus adaptadores a partir de la configuración.
// Lo comparten cmd/pricewatch y cmd/api.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kemaxx/InventoryInsights/internal/application/forecast"
	"github.com/kemaxx/InventoryInsights/internal/application/inventory"
	"github.com/kemaxx/InventoryInsights/internal/application/pipeline"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/application/pricing"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	domainforecast "github.com/kemaxx/InventoryInsights/internal/domain/forecast"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/archive"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/mail"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/metrics"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/pdf"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/postgres"
	infraredis "github.com/kemaxx/InventoryInsights/internal/infrastructure/redis"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/sheets"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/tabular"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/xlsx"
	"github.com/kemaxx/InventoryInsights/pkg/config"
)

// App componentes armados. Close libera conexiones en orden inverso.
type App struct {
	Pipeline *pipeline.Pipeline
	Store    ports.TableStore
	Tables   tabular.Tables
	Metrics  http.Handler

	closers []func()
}

// Close libera los recursos abiertos por Build.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Tables traduce la sección Store.Tables de la configuración.
func Tables(cfg config.TablesConfig) tabular.Tables {
	return tabular.Tables{
		Base:      cfg.Base,
		Previous:  cfg.Previous,
		Current:   cfg.Current,
		Catalog:   cfg.Catalog,
		Issues:    cfg.Issues,
		Purchases: cfg.Purchases,
		Weekly:    cfg.Weekly,
		Dashboard: cfg.Dashboard,
	}
}

// NewStore abre el almacén tabular del backend configurado.
func NewStore(ctx context.Context, cfg *config.Config) (ports.TableStore, func(), error) {
	tables := Tables(cfg.Store.Tables)
	switch cfg.Store.Backend {
	case "sheets":
		locations := map[string]sheets.Location{}
		logical := map[string]string{
			"base": tables.Base, "previous": tables.Previous, "current": tables.Current,
			"catalog": tables.Catalog, "issues": tables.Issues, "purchases": tables.Purchases,
			"weekly": tables.Weekly, "dashboard": tables.Dashboard,
		}
		for key, name := range logical {
			loc := sheets.Location{SpreadsheetID: cfg.Sheets.SpreadsheetFor(key), Sheet: name}
			if key == "dashboard" {
				loc.HeaderRow = cfg.Sheets.DashboardHeaderRow
			}
			locations[name] = loc
		}
		s, err := sheets.NewStore(ctx, sheets.Options{
			CredentialsFile:   cfg.Sheets.CredentialsFile,
			Locations:         locations,
			RequestsPerSecond: cfg.Sheets.RequestsPerSecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "xlsx":
		return xlsx.NewStore(cfg.XLSX.Path), func() {}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("backend desconocido %q", cfg.Store.Backend)
	}
}

// Build arma el pipeline completo.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{Tables: Tables(cfg.Store.Tables)}

	store, closeStore, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("almacén %s: %w", cfg.Store.Backend, err)
	}
	app.Store = store
	app.closers = append(app.closers, closeStore)

	repos := tabular.NewRepositories(store, app.Tables)

	var (
		cache  ports.ForecastCache
		locker ports.RunLocker
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = rdb.Close() })
		cache = infraredis.NewForecastCache(rdb, "")
		locker = infraredis.NewRunLocker(rdb)
	}

	relevanceCfg := relevanceConfig(cfg.Pricing)
	stages := ReportStages(cfg, repos.Movements, cache, log)

	renderer := pdf.NewMarotoReportRenderer("")

	var notifier ports.Notifier
	if cfg.Mail.Enabled() {
		var attach ports.ReportRenderer
		if cfg.Mail.AttachPDF {
			attach = renderer
		}
		notifier = mail.NewNotifier(
			mail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
			mail.Config{
				From:          cfg.Mail.From,
				Signature:     cfg.Mail.Signature,
				InventoryLink: cfg.Mail.InventoryLink,
				IntervalWidth: cfg.Forecast.IntervalWidth,
			},
			attach, log,
		)
	} else {
		log.Warn().Msg("SMTP no configurado: los cambios sólo se registran en el log")
		notifier = mail.NewLogNotifier(log)
	}

	var archiver ports.ReportArchiver
	switch {
	case cfg.Archive.Bucket != "":
		gcs, err := archive.NewGCSArchiver(ctx, cfg.Archive.Bucket, cfg.Archive.Prefix, cfg.Archive.CredentialsFile)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = gcs.Close() })
		archiver = gcs
	case cfg.Archive.LocalDir != "":
		archiver = archive.NewLocalArchiver(cfg.Archive.LocalDir)
	}

	runMetrics := metrics.NewRunMetrics(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job)
	app.Metrics = runMetrics.Handler()

	deps := pipeline.Deps{
		Sync:       inventory.NewCatalogSyncUseCase(repos.Costs, repos.Weekly),
		Relevance:  inventory.NewRelevanceUseCase(repos.Movements, relevanceCfg),
		Catalog:    repos.Catalog,
		Reconcile:  pricing.NewReconcileUseCase(decimal.NewFromFloat(cfg.Pricing.ThresholdPct), log),
		Report:     pricing.NewReportUseCase(log, stages...),
		Notifier:   notifier,
		Recipients: cfg.Mail.Recipients,
		Tx:         tabular.NewTxRunner(store, app.Tables),
		LockTTL:    cfg.Redis.LockTTL,
		Locker:     locker,
		Metrics:    runMetrics,
		Renderer:   renderer,
		Archiver:   archiver,
	}

	app.Pipeline = pipeline.New(deps, log)
	return app, nil
}

// ReportStages arma las etapas de post-proceso del reporte en orden: pronóstico
// (FORECAST_ENABLED) e insights (PRICING_INSIGHTS_ENABLED).
func ReportStages(
	cfg *config.Config,
	movements repository.InventoryMovementRepository,
	cache ports.ForecastCache,
	log zerolog.Logger,
) []pricing.ReportStage {
	var stages []pricing.ReportStage
	if cfg.Forecast.Enabled {
		modelCfg := domainforecast.AdditiveConfig{
			IntervalWidth:  cfg.Forecast.IntervalWidth,
			SeasonalPeriod: cfg.Forecast.SeasonalPeriod,
		}
		newModel := func() ports.ForecastModel { return domainforecast.NewAdditiveModel(modelCfg) }
		demand := forecast.NewDemandUseCase(movements, newModel, cache, forecast.Options{
			Workers:  cfg.Forecast.Workers,
			CacheTTL: cfg.Forecast.CacheTTL,
		}, log)
		stages = append(stages, pricing.NewForecastStage(demand, entity.NewCategorySet(cfg.Pricing.ForecastCategories...)))
	}
	if cfg.Pricing.InsightsEnabled {
		stages = append(stages, pricing.NewInsightStage(pricing.NewInsightUseCase(), movements,
			entity.NewCategorySet(cfg.Pricing.InsightCategories...)))
	}
	return stages
}

// relevanceConfig completa con los valores por defecto las listas vacías.
func relevanceConfig(p config.PricingConfig) inventory.RelevanceConfig {
	def := inventory.DefaultRelevanceConfig()
	out := inventory.RelevanceConfig{
		TopN:            p.TopN,
		VitalCategories: p.VitalCategories,
		ExtraCategories: p.ExtraCategories,
		Exclusions:      p.Exclusions,
		AlwaysInclude:   p.AlwaysInclude,
	}
	if out.TopN <= 0 {
		out.TopN = def.TopN
	}
	if len(out.VitalCategories) == 0 {
		out.VitalCategories = def.VitalCategories
	}
	if len(out.ExtraCategories) == 0 {
		out.ExtraCategories = def.ExtraCategories
	}
	if len(out.Exclusions) == 0 {
		out.Exclusions = def.Exclusions
	}
	if len(out.AlwaysInclude) == 0 {
		out.AlwaysInclude = def.AlwaysInclude
	}
	return out
}
