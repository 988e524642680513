// Package pdf genera el reporte de corrida en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha  │  ID de corrida                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conciliados / significativos / descartados / nuevos│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Stock | Base | Anterior | Actual | Cambio            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRONÓSTICO: semana actual vs real | próxima semana + IC     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: descartados + leyenda                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRise    = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorFall    = &props.Color{Red: 20, Green: 120, Blue: 50}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct {
	title string
}

// NewMarotoReportRenderer construye el generador; title vacío usa el título por defecto.
func NewMarotoReportRenderer(title string) *MarotoReportRenderer {
	if title == "" {
		title = "Inventory Price Change Report"
	}
	return &MarotoReportRenderer{title: title}
}

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(summary *dto.RunSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if summary.RunID != "" {
		m.AddRows(summaryRow(summary))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	m.AddRows(changeRows(summary.Significant)...)

	if fc := forecastRows(summary.Significant); len(fc) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("DEMAND FORECAST"))
		m.AddRows(forecastHeaderRow())
		m.AddRows(fc...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, s *dto.RunSummary) core.Row {
	date := s.StartedAt
	if date.IsZero() {
		date = time.Now()
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(date.Format("Monday, 02 Jan 2006"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(nonEmpty(s.RunID, "-"), props.Text{Size: 7, Align: align.Right, Top: 2, Color: colorGray}),
			text.New(dryRunLabel(s.DryRun), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 8}),
		),
	)
}

func summaryRow(s *dto.RunSummary) core.Row {
	cell := func(label string, v int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Align: align.Center, Top: 1}),
			text.New(strconv.Itoa(v), props.Text{Size: 11, Align: align.Center, Top: 5}),
		)
	}
	return row.New(13).Add(
		cell("RECONCILED", s.Reconciled),
		cell("SIGNIFICANT", len(s.Significant)),
		cell("DROPPED", len(s.Dropped)),
		cell("NEW STOCKS", len(s.NewStocks)),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Stock", 4, align.Left),
		h("Base (NGN)", 2, align.Right),
		h("Previous (NGN)", 2, align.Right),
		h("Current (NGN)", 2, align.Right),
		h("Change", 2, align.Right),
	)
}

func changeRows(records []dto.PriceChangeDTO) []core.Row {
	if len(records) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No significant price changes.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		changeColor := colorFall
		if r.Rise {
			changeColor = colorRise
		}
		value := func(s string) core.Component {
			return text.New(s, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(latin1(r.StockName), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(value(r.BaseCostPrice)),
			col.New(2).Add(value(r.PrevCostPrice)),
			col.New(2).Add(value(r.CurrentCostPrice)),
			col.New(2).Add(text.New(latin1(r.PercentageChange), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: changeColor,
			})),
		))
	}
	return result
}

func forecastHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Stock", 3),
		h("Week forecast", 2),
		h("Issued", 2),
		h("Accuracy %", 1),
		h("Next week", 2),
		h("Interval", 2),
	)
}

func forecastRows(records []dto.PriceChangeDTO) []core.Row {
	var result []core.Row
	for _, r := range records {
		f := r.Forecast
		if f == nil {
			continue
		}
		v := func(s string, size int) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: align.Center, Top: 1}))
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(latin1(r.StockName), props.Text{Size: 8, Top: 1, Left: 1})),
			v(num(f.CurrentWeekForecast), 2),
			v(num(f.ActualUnitsIssued), 2),
			v(num(f.ForecastAccuracyPct), 1),
			v(num(f.UpcomingForecast)+" ("+f.UpcomingWeekEnd+")", 2),
			v(num(f.UpcomingLowerCI)+" - "+num(f.UpcomingUpperCI), 2),
		))
	}
	return result
}

func footerRows(s *dto.RunSummary) []core.Row {
	var rows []core.Row
	if len(s.Dropped) > 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Missing from a cost table: "+latin1(strings.Join(s.Dropped, ", ")), props.Text{
				Size: 7, Color: colorGray, Top: 2,
			}),
		)))
	}
	rows = append(rows, row.New(10).Add(col.New(12).Add(
		text.New(
			"Forecasts are generated from historical issue data and are subject to uncertainty. "+
				"Use them as a guide rather than an absolute prediction.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func dryRunLabel(dry bool) string {
	if dry {
		return "PREVIEW"
	}
	return ""
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// latin1 quita los caracteres que la fuente helvetica no puede dibujar (emoji, ₦).
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
