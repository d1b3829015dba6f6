// Package payment registro manual de pagos (efectivo).
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// ErrNotOwner la factura existe pero es de otro usuario.
var ErrNotOwner = fmt.Errorf("%w: Invoice does not belong to the authenticated user", domain.ErrForbidden)

// InvoiceStore lo que el registro de pagos necesita del servicio de facturas.
type InvoiceStore interface {
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	MarkAdministrative(ctx context.Context, inv *entity.Invoice, to entity.InvoiceStatus) (*entity.Invoice, error)
	Now() time.Time
}

// CashPaymentRecorder marca facturas como pagadas en efectivo.
type CashPaymentRecorder struct {
	store InvoiceStore
	log   *logger.Logger
}

// NewCashPaymentRecorder construye el caso de uso.
func NewCashPaymentRecorder(store InvoiceStore, log *logger.Logger) *CashPaymentRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &CashPaymentRecorder{store: store, log: log.WithComponent("cash-payment")}
}

// MarkCashPayment vía administrativa: se permite desde cualquier estado y no sobrescribe
// un paidAt existente.
func (r *CashPaymentRecorder) MarkCashPayment(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	inv, err := r.store.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return r.mark(ctx, inv)
}

// MarkCashPaymentFor como MarkCashPayment, comprobando antes que callerID sea el dueño.
func (r *CashPaymentRecorder) MarkCashPaymentFor(ctx context.Context, callerID, invoiceID string) (*entity.Invoice, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	inv, err := r.store.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != callerID {
		r.log.Warn().Str("invoice_id", invoiceID).Str("caller", callerID).Msg("cash payment on foreign invoice rejected")
		return nil, ErrNotOwner
	}
	return r.mark(ctx, inv)
}

func (r *CashPaymentRecorder) mark(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	now := r.store.Now()
	pd := inv.PaymentDetails
	if pd == nil {
		pd = &entity.PaymentDetails{}
	}
	pd.PaymentStatus = entity.PaymentPaid
	pd.PaymentMethod = entity.PaymentCash
	pd.PaymentDate = &now
	if pd.TotalAmount == 0 {
		pd.TotalAmount = inv.GrandTotal()
	}
	if pd.Currency == "" {
		pd.Currency = "INR"
	}
	inv.PaymentDetails = pd

	saved, err := r.store.MarkAdministrative(ctx, inv, entity.StatusPaid)
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("invoice_id", inv.ID).Msg("cash payment marked")
	return saved, nil
}
