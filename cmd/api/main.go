package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	_ "github.com/kemaxx/InventoryInsights/docs"
	"github.com/kemaxx/InventoryInsights/internal/application/auth"
	"github.com/kemaxx/InventoryInsights/internal/bootstrap"
	httpRouter "github.com/kemaxx/InventoryInsights/internal/interfaces/http"
	"github.com/kemaxx/InventoryInsights/pkg/config"
	"github.com/kemaxx/InventoryInsights/pkg/logger"
)

const docsFile = "./docs/swagger.json"

// @title                       Inventory Insights API
// @version                     1.0
// @description                 Seguimiento semanal de cambios de precio de costo del inventario.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer.
func main() {
	fs := pflag.NewFlagSet("api", pflag.ExitOnError)
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
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio para la API")
	}

	ctx := context.Background()
	pw, err := bootstrap.Build(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("armar pipeline")
	}
	defer pw.Close()

	authUC := auth.NewAuthUseCase([]auth.Account{
		{Username: cfg.Operator.Username, PasswordHash: cfg.Operator.PasswordHash, Role: auth.RoleOperator},
		{Username: cfg.Operator.ViewerUsername, PasswordHash: cfg.Operator.ViewerPasswordHash, Role: auth.RoleViewer},
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 5, // una corrida con pronósticos puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs := docsFile
	if _, err := os.Stat(docs); err != nil {
		log.Warn().Err(err).Str("file", docs).Msg("swagger.json no encontrado, /docs deshabilitado")
		docs = ""
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Runs:      pw.Pipeline,
		JWTSecret: cfg.JWT.Secret,
		Service:   cfg.App.Name,
		Metrics:   pw.Metrics,
		DocsFile:  docs,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
