package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoizo-api/internal/application/dto"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/domain"
)

// prefijos de los sentinelas que no se muestran al cliente.
var hiddenPrefixes = []string{
	domain.ErrInvalidInput.Error() + ": ",
	domain.ErrInvalidStatusTransition.Error() + ": ",
	domain.ErrExportGeneration.Error() + ": ",
}

// classifyError traduce la taxonomía de dominio a status HTTP y código.
func classifyError(err error) (int, string) {
	var dbErr *domain.DatabaseConnectionError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return fiber.StatusBadRequest, "INVALID_STATUS_TRANSITION"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, reporting.ErrNothingToExport), errors.Is(err, domain.ErrEmptyExport):
		return fiber.StatusBadRequest, "EMPTY_EXPORT"
	case errors.Is(err, domain.ErrExportGeneration):
		return fiber.StatusInternalServerError, "EXPORT_FAILED"
	case errors.As(err, &dbErr):
		return fiber.StatusServiceUnavailable, "DATABASE_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// publicMessage mensaje para el cliente, nunca vacío.
func publicMessage(status int, err error) string {
	switch status {
	case fiber.StatusServiceUnavailable:
		return "Service temporarily unavailable, please try again later"
	case fiber.StatusInternalServerError:
		if !errors.Is(err, domain.ErrExportGeneration) {
			return "Internal server error"
		}
	}
	msg := err.Error()
	for _, p := range hiddenPrefixes {
		msg = strings.ReplaceAll(msg, p, "")
	}
	if msg == "" {
		return "Request failed"
	}
	return msg
}

// writeError responde con el status que corresponde a err.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classifyError(err)
	return writeErrorStatus(c, status, code, err)
}

// writeErrorStatus fuerza el status (algunas rutas lo redefinen, p. ej. DELETE sin factura = 403).
func writeErrorStatus(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: publicMessage(status, err)})
}
