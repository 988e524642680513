package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// writeError traduce errores de dominio a status y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		status, code = fiber.StatusConflict, "RUN_IN_PROGRESS"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDataShape):
		status, code = fiber.StatusUnprocessableEntity, "DATA_SHAPE"
	case errors.Is(err, domain.ErrDivisionByZero):
		status, code = fiber.StatusUnprocessableEntity, "DIVISION_BY_ZERO"
	case errors.Is(err, domain.ErrExternalService):
		status, code = fiber.StatusBadGateway, "EXTERNAL_SERVICE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
