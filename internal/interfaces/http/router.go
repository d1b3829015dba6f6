package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/notification"
	"github.com/jhoicas/invoizo-api/internal/application/payment"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices  *invoicing.Service
	Export    *reporting.ExportUseCase
	PDF       *reporting.PDFUseCase
	Email     *notification.EmailService
	Payments  *payment.CashPaymentRecorder
	Logger    *logger.Logger
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Export, deps.PDF, deps.Email, deps.Logger)
	invoices.Post("/", invoiceHandler.Save)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/filter", invoiceHandler.Filter)
	invoices.Get("/overdue", invoiceHandler.Overdue)
	invoices.Get("/export", invoiceHandler.Export)
	invoices.Post("/sendinvoice", invoiceHandler.SendInvoice)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)

	payments := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Payments, deps.Logger)
	payments.Post("/mark-cash-payment/:invoiceId", paymentHandler.MarkCashPayment)
}
