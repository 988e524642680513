// Package mail envía las alertas de cambio de costo por SMTP.
package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// Sender envía mensajes ya armados. *gomail.Dialer lo implementa.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config datos del remitente y del cuerpo.
type Config struct {
	From          string
	Signature     []string // líneas bajo "Best Regards,"
	InventoryLink string
	IntervalWidth float64 // ancho del intervalo del pronóstico, para el encabezado de la tabla
}

var _ ports.Notifier = (*Notifier)(nil)

// Notifier implementa ports.Notifier con gomail.
type Notifier struct {
	sender   Sender
	cfg      Config
	renderer ports.ReportRenderer // opcional: adjunta el PDF
	log      zerolog.Logger
}

// NewDialer crea el dialer SMTP; el puerto 465 usa SSL implícito.
func NewDialer(host string, port int, username, password string) *gomail.Dialer {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return d
}

// NewNotifier crea el notificador. renderer puede ser nil.
func NewNotifier(sender Sender, cfg Config, renderer ports.ReportRenderer, log zerolog.Logger) *Notifier {
	if cfg.IntervalWidth <= 0 {
		cfg.IntervalWidth = 0.80
	}
	return &Notifier{sender: sender, cfg: cfg, renderer: renderer, log: log}
}

// Notify arma y envía un único correo a todos los destinatarios.
func (n *Notifier) Notify(ctx context.Context, records []dto.PriceChangeDTO, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("sin destinatarios: %w", domain.ErrInvalidInput)
	}
	m, err := n.Message(records, recipients)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sender.DialAndSend(m); err != nil {
		return domain.External("smtp", "send", err)
	}
	n.log.Info().Int("records", len(records)).Int("recipients", len(recipients)).Msg("alerta de cambios enviada")
	return nil
}

// Message arma el mensaje sin enviarlo.
func (n *Notifier) Message(records []dto.PriceChangeDTO, recipients []string) (*gomail.Message, error) {
	html, err := n.RenderBody(records)
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", Subject)
	m.SetBody("text/html", html)

	if n.renderer != nil {
		pdf, err := n.renderer.Render(&dto.RunSummary{Significant: records})
		if err != nil {
			return nil, fmt.Errorf("generar adjunto: %w", err)
		}
		m.Attach("price-changes.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}
	return m, nil
}
