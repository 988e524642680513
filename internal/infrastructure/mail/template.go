package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
)

// Subject asunto fijo de las alertas.
const Subject = "Urgent Notification: Inventory Price Change Alert"

const bodyTemplate = `<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; font-size: 16px; line-height: 1.6; color: #333; margin: 0; padding: 20px; }
      h1, h2, h3 { font-weight: bold; }
      p { margin: 0 0 20px; }
      i.new { font-style: italic; color: green; }
      hr { border: none; border-top: 1px solid #ccc; margin: 20px 0; }
      table { width: 100%; border-collapse: collapse; }
      th, td { border: 1px solid black; padding: 8px; text-align: center; }
      th { background-color: #f2f2f2; }
    </style>
  </head>
  <body>
    <p>Esteemed Management Team,</p>
    <p>Warm greetings to each of you.</p>
    <p>I am reaching out to discuss the recent movements in our stock cost prices. It's essential to keep you informed about these developments.</p>
    <p>Below you'll find a detailed overview of the recent fluctuations in prices:</p>
{{range .Records}}
    <h1>{{.StockName}}</h1>
    <p>Base Cost Price: ₦{{.BaseCostPrice}}</p>
    <p>Previous Cost Price: ₦{{.PrevCostPrice}}</p>
    <p>Current Cost Price: ₦{{.CurrentCostPrice}}</p>
    <p>Percentage Change: <strong>{{.PercentageChange}}</strong></p>
{{- if .Insight}}
    <p><i>{{.Insight}}</i></p>
{{- end}}
{{- with .Forecast}}
    <h2>Demand Forecast and Issues Analysis <i class="new">(New!)</i></h2>
    <table>
      <thead>
        <tr>
          <th>Current Week Forecast</th>
          <th>Actual Units Issued</th>
          <th>Forecast Accuracy (%)</th>
          <th>Upcoming Week Forecast</th>
          <th>Upcoming Week {{$.IntervalPct}}% CI Forecast</th>
        </tr>
      </thead>
      <tbody>
        <tr>
          <td>{{num .CurrentWeekForecast}}</td>
          <td>{{num .ActualUnitsIssued}}</td>
          <td>{{num .ForecastAccuracyPct}}</td>
          <td>{{num .UpcomingForecast}}</td>
          <td>({{num .UpcomingLowerCI}}, {{num .UpcomingUpperCI}})</td>
        </tr>
      </tbody>
    </table>
{{- end}}
    <hr>
{{end}}
{{- if .HasForecast}}
    <h3>Disclaimer for Forecast Report</h3>
    <p><strong>The foregoing forecast report for inventory and demand analysis has been generated using predictive analytics on historical issue data. These forecasts are inherently subject to uncertainty and should be used as a guide rather than an absolute prediction.</strong></p>
{{- end}}
    <br/>
    <p>Best Regards,</p>
{{- range .Signature}}
    <p>{{.}}</p>
{{- end}}
{{- if .InventoryLink}}
    <p>For more, visit <a href="{{.InventoryLink}}">Our Inventory List</a>.</p>
{{- end}}
  </body>
</html>
`

var body = template.Must(template.New("alert").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).Parse(bodyTemplate))

type bodyData struct {
	Records       []dto.PriceChangeDTO
	HasForecast   bool
	IntervalPct   string
	Signature     []string
	InventoryLink string
}

// RenderBody genera el HTML del correo: una tarjeta por cambio, con tabla de
// pronóstico sólo cuando el registro la trae.
func (n *Notifier) RenderBody(records []dto.PriceChangeDTO) (string, error) {
	data := bodyData{
		Records:       records,
		IntervalPct:   strconv.FormatFloat(n.cfg.IntervalWidth*100, 'f', -1, 64),
		Signature:     n.cfg.Signature,
		InventoryLink: n.cfg.InventoryLink,
	}
	for _, r := range records {
		if r.Forecast != nil {
			data.HasForecast = true
			break
		}
	}
	var buf bytes.Buffer
	if err := body.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("renderizar correo: %w", err)
	}
	return buf.String(), nil
}
