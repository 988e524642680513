package mail_test

import (
	"context"
	"errors"
	"html"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/mail"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) Render(*dto.RunSummary) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.4"), nil
}

func records() []dto.PriceChangeDTO {
	return []dto.PriceChangeDTO{
		{
			StockName: "GULDER", BaseCostPrice: "100.00", PrevCostPrice: "105.00", CurrentCostPrice: "120.00",
			PercentageChange: "+ 16.67% 📈", Rise: true,
			Forecast: &dto.ForecastDTO{CurrentWeekForecast: 100, ActualUnitsIssued: 105, ForecastAccuracyPct: 105,
				UpcomingForecast: 110, UpcomingLowerCI: 90, UpcomingUpperCI: 130},
			Insight: "GULDER is trending up.",
		},
		{
			StockName: "A&W", BaseCostPrice: "2,000.00", PrevCostPrice: "2,000.00", CurrentCostPrice: "1,700.00",
			PercentageChange: "-15% 📉",
		},
	}
}

func TestRenderBody_TarjetasConYSinPronostico(t *testing.T) {
	n := mail.NewNotifier(&fakeSender{}, mail.Config{Signature: []string{"Store-Keeper"}, InventoryLink: "https://example.com/list"}, nil, zerolog.Nop())

	rendered, err := n.RenderBody(records())
	require.NoError(t, err)
	// html/template escapa "+" como &#43;; se compara el texto que ve el cliente de correo.
	assert.Contains(t, rendered, "&#43; 16.67% 📈")
	body := html.UnescapeString(rendered)

	assert.Contains(t, body, "<h1>GULDER</h1>")
	assert.Contains(t, body, "Current Cost Price: ₦120.00")
	assert.Contains(t, body, "+ 16.67% 📈")
	assert.Contains(t, body, "<td>(90, 130)</td>")
	assert.Contains(t, body, "Upcoming Week 80% CI Forecast")
	assert.Contains(t, body, "GULDER is trending up.")
	assert.Contains(t, rendered, "<h1>A&amp;W</h1>")
	assert.Contains(t, body, "Disclaimer for Forecast Report")
	assert.Contains(t, body, `href="https://example.com/list"`)
	assert.Contains(t, body, "<p>Store-Keeper</p>")
	// Una sola tabla: sólo GULDER trae pronóstico.
	assert.Equal(t, 1, strings.Count(body, "<table>"))
}

func TestRenderBody_SinPronosticoNoLlevaDescargo(t *testing.T) {
	n := mail.NewNotifier(&fakeSender{}, mail.Config{}, nil, zerolog.Nop())
	body, err := n.RenderBody(records()[1:])
	require.NoError(t, err)
	assert.NotContains(t, body, "Disclaimer")
	assert.NotContains(t, body, "<table>")
}

func TestNotify_EnviaConAdjunto(t *testing.T) {
	sender := &fakeSender{}
	renderer := &fakeRenderer{}
	n := mail.NewNotifier(sender, mail.Config{From: "store@example.com"}, renderer, zerolog.Nop())

	err := n.Notify(context.Background(), records(), []string{"a@example.com", "b@example.com"})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, []string{mail.Subject}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"store@example.com"}, m.GetHeader("From"))
	assert.Equal(t, 1, renderer.calls)
}

func TestNotify_Errores(t *testing.T) {
	n := mail.NewNotifier(&fakeSender{err: errors.New("dial tcp: refused")}, mail.Config{}, nil, zerolog.Nop())

	err := n.Notify(context.Background(), records(), []string{"a@example.com"})
	assert.ErrorIs(t, err, domain.ErrExternalService)

	err = n.Notify(context.Background(), records(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = n.Notify(ctx, records(), []string{"a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
