package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/forecast"
	"github.com/kemaxx/InventoryInsights/internal/application/inventory"
	"github.com/kemaxx/InventoryInsights/internal/application/pipeline"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/application/pricing"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	domainforecast "github.com/kemaxx/InventoryInsights/internal/domain/forecast"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/tabular"
)

var runDay = time.Date(2024, 7, 29, 9, 0, 0, 0, time.UTC)

func costTable(name string, rows ...[]string) *ports.Table {
	return &ports.Table{Name: name, Header: []string{"Stock name", "Qty", "Cost price", "Amount"}, Rows: rows}
}

func seedStore() *tabular.MemoryStore {
	return tabular.NewMemoryStore(
		costTable("Base Cost", []string{"GULDER", "1", "100", "100"}, []string{"RICE", "1", "500", "500"}, []string{"WATER", "1", "100", "100"}),
		costTable("Previous Costs", []string{"GULDER", "1", "105", "105"}, []string{"RICE", "1", "500", "500"}, []string{"WATER", "1", "100", "100"}),
		costTable("Current Costs",
			[]string{"GULDER", "1", "120", "120"},
			[]string{"RICE", "1", "400", "400"},
			[]string{"WATER", "1", "101", "101"},
			[]string{"AMSTEL", "1", "900", "900"},
		),
		&ports.Table{Name: "My Stock", Header: []string{"Stock Name", "Ptn Name", "Category"}, Rows: [][]string{
			{"GULDER", "BOTTLE", "DRINKS"},
			{"RICE", "BAG", "FOOD ITEM"},
			{"WATER", "BOTTLE", "BEVERAGE"},
			{"AMSTEL", "BOTTLE", "DRINKS"},
		}},
		&ports.Table{Name: "Issues", Header: []string{"Date", "Item name", "Category", "Usage"}, Rows: [][]string{
			{"2024-07-22", "GULDER", "DRINKS", "10"},
			{"2024-07-22", "RICE", "FOOD ITEM", "2"},
			{"2024-07-23", "WATER", "BEVERAGE", "30"},
			{"2024-07-23", "AMSTEL", "DRINKS", "4"},
		}},
		&ports.Table{Name: "Purchases", Header: []string{"Date", "Stock name", "Rate", "Qty", "Amount"}},
		&ports.Table{Name: "Weekly Changes", Header: []string{"Stock Name", "Base Rate"}, Rows: [][]string{
			{"GULDER", "100"}, {"RICE", "500"}, {"WATER", "100"},
		}},
	)
}

type fakeNotifier struct {
	calls   int
	records []dto.PriceChangeDTO
	to      []string
	err     error
}

func (n *fakeNotifier) Notify(_ context.Context, records []dto.PriceChangeDTO, to []string) error {
	n.calls++
	n.records = records
	n.to = to
	return n.err
}

type fakeLocker struct {
	busy     bool
	released int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	if l.busy {
		return nil, domain.ErrRunInProgress
	}
	return func(context.Context) error { l.released++; return nil }, nil
}

type fakeMetrics struct {
	stats  []ports.RunStats
	pushes int
}

func (m *fakeMetrics) ObserveRun(s ports.RunStats) { m.stats = append(m.stats, s) }
func (m *fakeMetrics) Push(context.Context) error  { m.pushes++; return nil }

type fakeArchiver struct{ names []string }

func (a *fakeArchiver) Archive(_ context.Context, name, _ string, _ []byte) (string, error) {
	a.names = append(a.names, name)
	return "gs://bucket/" + name, nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(*dto.RunSummary) ([]byte, error) { return []byte("%PDF"), nil }

type fixture struct {
	store    *tabular.MemoryStore
	notifier *fakeNotifier
	locker   *fakeLocker
	metrics  *fakeMetrics
	archiver *fakeArchiver
	p        *pipeline.Pipeline
}

func newFixture(stages ...func(*tabular.Repositories) pricing.ReportStage) *fixture {
	f := &fixture{
		store:    seedStore(),
		notifier: &fakeNotifier{},
		locker:   &fakeLocker{},
		metrics:  &fakeMetrics{},
		archiver: &fakeArchiver{},
	}
	tables := tabular.DefaultTables()
	repos := tabular.NewRepositories(f.store, tables)
	relevance := inventory.DefaultRelevanceConfig()
	relevance.AlwaysInclude = nil
	var reportStages []pricing.ReportStage
	for _, stage := range stages {
		reportStages = append(reportStages, stage(repos))
	}

	f.p = pipeline.New(pipeline.Deps{
		Sync:       inventory.NewCatalogSyncUseCase(repos.Costs, repos.Weekly),
		Relevance:  inventory.NewRelevanceUseCase(repos.Movements, relevance),
		Catalog:    repos.Catalog,
		Reconcile:  pricing.NewReconcileUseCase(decimal.Zero, zerolog.Nop()),
		Report:     pricing.NewReportUseCase(zerolog.Nop(), reportStages...),
		Notifier:   f.notifier,
		Recipients: []string{"ops@example.com"},
		Tx:         tabular.NewTxRunner(f.store, tables),
		Locker:     f.locker,
		Metrics:    f.metrics,
		Renderer:   fakeRenderer{},
		Archiver:   f.archiver,
	}, zerolog.Nop()).WithClock(func() time.Time { return runDay })
	return f
}

func (f *fixture) table(t *testing.T, name string) *ports.Table {
	t.Helper()
	tbl, err := f.store.ReadAll(context.Background(), name)
	require.NoError(t, err)
	return tbl
}

func TestRun_CorridaCompleta(t *testing.T) {
	f := newFixture()
	summary, err := f.p.Run(context.Background(), pipeline.RunOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, []string{"AMSTEL"}, summary.NewStocks)
	assert.Equal(t, 4, summary.Relevant)
	assert.Equal(t, 4, summary.Reconciled)
	assert.Empty(t, summary.Dropped)
	require.Len(t, summary.Significant, 2)
	assert.Equal(t, "GULDER", summary.Significant[0].StockName)
	assert.Equal(t, "+ 16.67% 📈", summary.Significant[0].PercentageChange)
	assert.Equal(t, "RICE", summary.Significant[1].StockName)
	assert.Equal(t, "-25% 📉", summary.Significant[1].PercentageChange)
	assert.True(t, summary.Notified)
	assert.Equal(t, []string{
		pipeline.WriteBase, pipeline.WriteDashboard, pipeline.WriteWeekly, pipeline.WritePrevious,
	}, summary.Written)

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, []string{"ops@example.com"}, f.notifier.to)

	base := f.table(t, "Base Cost")
	assert.Equal(t, [][]string{
		{"AMSTEL", "1", "900", "900"},
		{"GULDER", "1", "120", "100"},
		{"RICE", "1", "400", "500"},
		{"WATER", "1", "100", "100"},
	}, base.Rows, "base rebasada sólo en los significativos")

	previous := f.table(t, "Previous Costs")
	assert.Len(t, previous.Rows, 4)
	assert.Equal(t, "120", previous.Rows[0][2], "previous queda igual a current")

	weekly := f.table(t, "Weekly Changes")
	assert.Equal(t, []string{"Stock Name", "Base Rate", "Date_2024-07-29"}, weekly.Header)
	assert.Equal(t, []string{"AMSTEL", "900", ""}, weekly.Rows[0])
	assert.Equal(t, []string{"GULDER", "100", "120"}, weekly.Rows[1])
	assert.Equal(t, []string{"RICE", "500", "400"}, weekly.Rows[2])
	assert.Equal(t, []string{"WATER", "100", ""}, weekly.Rows[3])

	dash := f.table(t, "Ken's Store")
	require.Len(t, dash.Rows, 4)
	assert.Equal(t, []string{"GULDER", "BOTTLE", "120", "105", "120"}, dash.Rows[1])

	assert.Equal(t, 1, f.locker.released)
	require.Len(t, f.metrics.stats, 1)
	assert.False(t, f.metrics.stats[0].Failed)
	assert.Equal(t, 2, f.metrics.stats[0].Significant)
	assert.Len(t, f.archiver.names, 2)
	assert.Contains(t, summary.ReportURL, "report.pdf")
}

func TestRun_ReportaStocksSinPronostico(t *testing.T) {
	f := newFixture(func(repos *tabular.Repositories) pricing.ReportStage {
		newModel := func() ports.ForecastModel {
			return domainforecast.NewAdditiveModel(domainforecast.AdditiveConfig{})
		}
		demand := forecast.NewDemandUseCase(repos.Movements, newModel, nil, forecast.Options{}, zerolog.Nop())
		return pricing.NewForecastStage(demand, entity.NewCategorySet(entity.CategoryDrinks))
	})
	summary, err := f.p.Run(context.Background(), pipeline.RunOptions{DryRun: true})
	require.NoError(t, err)

	require.Len(t, summary.Significant, 2)
	assert.Nil(t, summary.Significant[0].Forecast)
	assert.Contains(t, summary.Significant[0].ForecastSkipped, domain.ErrInsufficientHistory.Error())
	assert.Empty(t, summary.Significant[1].ForecastSkipped, "RICE no es pronosticable")
	assert.Equal(t, []string{"GULDER"}, summary.ForecastSkipped)

	require.Len(t, f.metrics.stats, 1)
	assert.Equal(t, 0, f.metrics.stats[0].Forecasted)
	assert.Equal(t, 1, f.metrics.stats[0].ForecastSkip)
}

func TestRun_DryRunNoNotificaNiEscribe(t *testing.T) {
	f := newFixture()
	summary, err := f.p.Run(context.Background(), pipeline.RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, summary.Significant, 2)
	assert.False(t, summary.Notified)
	assert.Empty(t, summary.Written)
	assert.Zero(t, f.notifier.calls)
	assert.Len(t, f.table(t, "Base Cost").Rows, 3)
	assert.Zero(t, f.locker.released, "dry-run no toma el candado")
}

func TestRun_FalloDeNotificacionNoEscribe(t *testing.T) {
	f := newFixture()
	f.notifier.err = domain.External("smtp", "send", errors.New("timeout"))
	_, err := f.p.Run(context.Background(), pipeline.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrExternalService)

	base := f.table(t, "Base Cost")
	assert.Len(t, base.Rows, 3)
	assert.Equal(t, "100", base.Rows[0][2])
	_, err = f.store.ReadAll(context.Background(), "Ken's Store")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, f.metrics.stats, 1)
	assert.True(t, f.metrics.stats[0].Failed)
}

func TestRun_SinSignificativosNoNotificaPeroRota(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.WriteAll(context.Background(), "Current Costs",
		costTable("Current Costs", []string{"GULDER", "1", "100", "100"}, []string{"RICE", "1", "500", "500"}, []string{"WATER", "1", "100", "100"})))

	summary, err := f.p.Run(context.Background(), pipeline.RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, summary.Significant)
	assert.False(t, summary.Notified)
	assert.Zero(t, f.notifier.calls)
	assert.Equal(t, "100", f.table(t, "Previous Costs").Rows[0][2])
	assert.Equal(t, []string{"Stock Name", "Base Rate"}, f.table(t, "Weekly Changes").Header)
}

func TestRun_CorridaEnCurso(t *testing.T) {
	f := newFixture()
	f.locker.busy = true
	_, err := f.p.Run(context.Background(), pipeline.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
	assert.Zero(t, f.notifier.calls)
}

func TestRun_DescartaStocksAusentes(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.WriteAll(context.Background(), "Previous Costs",
		costTable("Previous Costs", []string{"GULDER", "1", "105", "105"})))
	require.NoError(t, f.store.WriteAll(context.Background(), "Base Cost",
		costTable("Base Cost", []string{"GULDER", "1", "100", "100"})))
	require.NoError(t, f.store.WriteAll(context.Background(), "Current Costs",
		costTable("Current Costs", []string{"GULDER", "1", "120", "120"})))

	summary, err := f.p.Run(context.Background(), pipeline.RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"AMSTEL", "RICE", "WATER"}, summary.Dropped)
	assert.Equal(t, 1, summary.Reconciled)
}
