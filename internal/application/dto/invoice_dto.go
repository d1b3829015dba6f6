package dto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// SaveInvoiceRequest cuerpo de POST /api/invoices: la factura más una miniatura opcional
// en base64 (se acepta también el formato data URL).
type SaveInvoiceRequest struct {
	entity.Invoice
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ThumbnailBytes decodifica la miniatura; nil si no viene.
func (r *SaveInvoiceRequest) ThumbnailBytes() ([]byte, error) {
	raw := strings.TrimSpace(r.Thumbnail)
	if raw == "" {
		return nil, nil
	}
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("thumbnail must be base64: %w", err)
	}
	return data, nil
}

// StatusUpdateRequest cuerpo de PATCH /api/invoices/:id/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// CashPaymentResponse respuesta de POST /api/payments/mark-cash-payment/:invoiceId.
type CashPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
