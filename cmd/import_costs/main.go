// import_costs carga una exportación CSV del sistema de inventario en una tabla del almacén,
// reemplazando su contenido. Sirve para poblar "Current Costs" o el catálogo sin pasar por
// la hoja de cálculo.
//
// Uso: go run ./cmd/import_costs --table current [--encoding windows-1252] [--store xlsx] archivo.csv
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kemaxx/InventoryInsights/internal/bootstrap"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/tabular"
	"github.com/kemaxx/InventoryInsights/pkg/config"
	"github.com/kemaxx/InventoryInsights/pkg/logger"
)

func main() {
	fs := pflag.NewFlagSet("import_costs", pflag.ExitOnError)
	table := fs.String("table", "current", "tabla destino: nombre lógico (base, previous, current, catalog, ...) o físico")
	enc := fs.String("encoding", "utf-8", "codificación del CSV: utf-8 | windows-1252 | iso-8859-1")
	config.Flags(fs)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_costs [flags] archivo.csv")
		fs.PrintDefaults()
		os.Exit(2)
	}
	path := fs.Arg(0)

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_costs"})

	name, err := bootstrap.Tables(cfg.Store.Tables).Resolve(*table)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla destino")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir CSV")
	}
	defer f.Close()

	data, err := tabular.ReadCSV(name, f, *enc)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer CSV")
	}

	ctx := context.Background()
	store, closeStore, err := bootstrap.NewStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Backend).Msg("abrir almacén")
	}

	err = store.WriteAll(ctx, name, data)
	closeStore()
	if err != nil {
		log.Error().Err(err).Str("table", name).Msg("escribir tabla")
		os.Exit(1)
	}

	log.Info().
		Str("table", name).
		Str("store", cfg.Store.Backend).
		Int("rows", len(data.Rows)).
		Int("columns", len(data.Header)).
		Msg("tabla importada")
}
