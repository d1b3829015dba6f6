package http

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoizo-api/internal/application/dto"
	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/notification"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	svc    *invoicing.Service
	export *reporting.ExportUseCase
	pdf    *reporting.PDFUseCase
	email  *notification.EmailService
	log    *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *invoicing.Service, export *reporting.ExportUseCase, pdf *reporting.PDFUseCase, email *notification.EmailService, log *logger.Logger) *InvoiceHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceHandler{svc: svc, export: export, pdf: pdf, email: email, log: log.WithComponent("invoice-handler")}
}

// Save crea o actualiza una factura del llamador.
// @Summary      Crear o actualizar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaveInvoiceRequest  true  "factura (thumbnail opcional en base64)"
// @Success      200   {object}  entity.Invoice
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Save(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	thumb, err := in.ThumbnailBytes()
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
	}
	inv := in.Invoice
	inv.OwnerID = ownerID
	saved, err := h.svc.SaveWithThumbnail(c.UserContext(), &inv, thumb)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(saved)
}

// List todas las facturas del llamador.
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Invoice
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	list, err := h.svc.Fetch(c.UserContext(), ownerID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(nonNil(list))
}

// Filter facturas del llamador por estado; sin status devuelve todas.
// @Summary      Filtrar facturas por estado
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "DRAFT, SENT, VIEWED, PAID, OVERDUE o CANCELLED"
// @Success      200     {array}   entity.Invoice
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/invoices/filter [get]
func (h *InvoiceHandler) Filter(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	var status entity.InvoiceStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := entity.ParseStatus(raw)
		if !ok {
			return writeError(c, fmt.Errorf("%w: Invalid status: %s", domain.ErrInvalidInput, raw))
		}
		status = st
	}
	list, err := h.svc.FetchByStatus(c.UserContext(), ownerID, status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(nonNil(list))
}

// Overdue facturas vencidas del llamador.
// @Summary      Facturas vencidas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Invoice
// @Router       /api/invoices/overdue [get]
func (h *InvoiceHandler) Overdue(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	list, err := h.svc.FetchByStatus(c.UserContext(), ownerID, entity.StatusOverdue)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(nonNil(list))
}

// UpdateStatus transición validada. Factura inexistente o transición inválida = 400.
// @Summary      Cambiar estado
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.StatusUpdateRequest  true  "nuevo estado"
// @Success      200   {object}  entity.Invoice
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if strings.TrimSpace(in.Status) == "" {
		return writeError(c, fmt.Errorf("%w: Status is required", domain.ErrInvalidInput))
	}
	to, ok := entity.ParseStatus(in.Status)
	if !ok {
		return writeError(c, fmt.Errorf("%w: Invalid status: %s", domain.ErrInvalidInput, in.Status))
	}
	saved, err := h.svc.UpdateStatus(c.UserContext(), ownerID, c.Params("id"), to)
	if errors.Is(err, domain.ErrNotFound) {
		return writeErrorStatus(c, fiber.StatusBadRequest, "NOT_FOUND", err)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(saved)
}

// Delete borra una factura del llamador; 403 si no existe para ese dueño.
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	err := h.svc.Remove(c.UserContext(), ownerID, c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return writeErrorStatus(c, fiber.StatusForbidden, "FORBIDDEN", err)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export descarga las facturas del llamador en Excel o CSV.
// @Summary      Exportar facturas
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format      query  string  true   "excel o csv"
// @Param        invoiceIds  query  string  false  "ids separados por comas"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	var ids []string
	for _, v := range c.Context().QueryArgs().PeekMulti("invoiceIds") {
		ids = append(ids, string(v))
	}
	res, err := h.export.Export(c.UserContext(), GetOwnerID(c), c.Query("format"), ids)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	return c.Send(res.Data)
}

// PDF descarga la factura del llamador renderizada en el servidor.
// @Summary      Descargar PDF
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	res, err := h.pdf.Render(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, res.Filename))
	return c.Send(res.Data)
}

// SendInvoice envía por correo el archivo adjunto; si invoiceId es un borrador del
// llamador, pasa a SENT.
// @Summary      Enviar factura por correo
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "PDF de la factura"
// @Param        email      formData  string  true   "destinatario"
// @Param        invoiceId  formData  string  false  "factura a marcar como SENT"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/sendinvoice [post]
func (h *InvoiceHandler) SendInvoice(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: Invoice file is required", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, fmt.Errorf("open uploaded file: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, fmt.Errorf("read uploaded file: %w", err))
	}

	attachment := notification.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}
	if err := h.email.SendInvoice(c.UserContext(), strings.TrimSpace(c.FormValue("email")), attachment); err != nil {
		return h.fail(c, err)
	}

	if id := strings.TrimSpace(c.FormValue("invoiceId")); id != "" {
		h.markSent(c, ownerID, id)
	}
	return c.JSON(dto.MessageResponse{Message: "Invoice sent successfully!"})
}

// markSent el correo ya salió: un fallo aquí solo se registra.
func (h *InvoiceHandler) markSent(c *fiber.Ctx, ownerID, id string) {
	found, err := h.svc.FetchByIDs(c.UserContext(), ownerID, []string{id})
	if err != nil {
		h.log.Warn().Err(err).Str("invoice_id", id).Msg("load invoice after send")
		return
	}
	if len(found) == 0 || found[0].EffectiveStatus() != entity.StatusDraft {
		return
	}
	if _, err := h.svc.UpdateStatus(c.UserContext(), ownerID, id, entity.StatusSent); err != nil {
		h.log.Warn().Err(err).Str("invoice_id", id).Msg("mark invoice sent after email")
	}
}

func (h *InvoiceHandler) fail(c *fiber.Ctx, err error) error {
	status, code := classifyError(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return writeErrorStatus(c, status, code, err)
}

func nonNil(list []*entity.Invoice) []*entity.Invoice {
	if list == nil {
		return []*entity.Invoice{}
	}
	return list
}
