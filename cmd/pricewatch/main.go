// pricewatch ejecuta una corrida del control de costos: detecta cambios significativos,
// notifica por correo y actualiza las tablas. Pensado para correr semanalmente desde cron.
//
// Uso: go run ./cmd/pricewatch [--dry-run] [--store sheets|xlsx|postgres] [--log-level debug]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/kemaxx/InventoryInsights/internal/application/pipeline"
	"github.com/kemaxx/InventoryInsights/internal/bootstrap"
	"github.com/kemaxx/InventoryInsights/pkg/config"
	"github.com/kemaxx/InventoryInsights/pkg/logger"
)

func main() {
	fs := pflag.NewFlagSet("pricewatch", pflag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "calcula y registra los cambios sin notificar ni escribir")
	config.Flags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "pricewatch",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("armar pipeline")
	}

	summary, err := app.Pipeline.Run(ctx, pipeline.RunOptions{DryRun: *dryRun})
	app.Close()
	if err != nil {
		log.Error().Err(err).Msg("corrida fallida")
		os.Exit(1)
	}

	log.Info().
		Str("run_id", summary.RunID).
		Bool("dry_run", summary.DryRun).
		Int("relevant", summary.Relevant).
		Int("reconciled", summary.Reconciled).
		Int("significant", len(summary.Significant)).
		Strs("dropped", summary.Dropped).
		Strs("new_stocks", summary.NewStocks).
		Bool("notified", summary.Notified).
		Strs("written", summary.Written).
		Str("report_url", summary.ReportURL).
		Msg("corrida terminada")
}
