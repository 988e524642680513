package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/application/pipeline"
)

// Runner ejecuta una corrida. *pipeline.Pipeline lo implementa.
type Runner interface {
	Run(ctx context.Context, opts pipeline.RunOptions) (*dto.RunSummary, error)
}

// RunHandler vista previa y disparo de corridas.
type RunHandler struct {
	runner Runner
}

// NewRunHandler construye el handler.
func NewRunHandler(runner Runner) *RunHandler {
	return &RunHandler{runner: runner}
}

// Preview godoc
// @Summary      Cambios significativos sin escribir ni notificar
// @Tags         runs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RunSummary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/price-changes [get]
func (h *RunHandler) Preview(c *fiber.Ctx) error {
	out, err := h.runner.Run(c.UserContext(), pipeline.RunOptions{DryRun: true})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Execute godoc
// @Summary      Ejecutar una corrida
// @Tags         runs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunRequest  false  "dry_run"
// @Success      200   {object}  dto.RunSummary
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/runs [post]
func (h *RunHandler) Execute(c *fiber.Ctx) error {
	var in dto.RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.runner.Run(c.UserContext(), pipeline.RunOptions{DryRun: in.DryRun})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
