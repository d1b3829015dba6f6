package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoizo-api/internal/application/dto"
	"github.com/jhoicas/invoizo-api/internal/application/payment"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// PaymentHandler registro manual de cobros.
type PaymentHandler struct {
	recorder *payment.CashPaymentRecorder
	log      *logger.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(recorder *payment.CashPaymentRecorder, log *logger.Logger) *PaymentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentHandler{recorder: recorder, log: log.WithComponent("payment-handler")}
}

// MarkCashPayment marca la factura del llamador como pagada en efectivo.
// @Summary      Registrar pago en efectivo
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceId  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.CashPaymentResponse
// @Failure      400  {object}  dto.CashPaymentResponse
// @Failure      403  {object}  dto.CashPaymentResponse
// @Router       /api/payments/mark-cash-payment/{invoiceId} [post]
func (h *PaymentHandler) MarkCashPayment(c *fiber.Ctx) error {
	id := c.Params("invoiceId")
	_, err := h.recorder.MarkCashPaymentFor(c.UserContext(), GetOwnerID(c), id)
	if err == nil {
		return c.JSON(dto.CashPaymentResponse{Success: true, Message: "Cash payment marked successfully"})
	}

	status := fiber.StatusInternalServerError
	message := "Failed to mark cash payment"
	var dbErr *domain.DatabaseConnectionError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.As(err, &dbErr):
		status, message = fiber.StatusServiceUnavailable, "Service temporarily unavailable, please try again later"
	}
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("invoice_id", id).Msg("mark cash payment")
	}
	return c.Status(status).JSON(dto.CashPaymentResponse{Success: false, Message: message})
}
