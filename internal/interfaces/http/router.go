package http

import (
	"net/http"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/kemaxx/InventoryInsights/internal/application/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Runs      Runner
	JWTSecret string
	Service   string
	Metrics   http.Handler // opcional: /metrics
	DocsFile  string       // opcional: swagger.json servido en /docs
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
	if deps.DocsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.DocsFile,
			Path:     "docs",
			Title:    "Inventory Insights API",
		}))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	runHandler := NewRunHandler(deps.Runs)
	protected.Get("/price-changes", RequireRole(auth.RoleOperator, auth.RoleViewer), runHandler.Preview)
	protected.Post("/runs", RequireRole(auth.RoleOperator), runHandler.Execute)
}
