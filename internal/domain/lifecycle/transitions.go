// Package lifecycle contiene la máquina de estados de la factura.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

var allowed = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.StatusDraft:     {entity.StatusSent, entity.StatusCancelled},
	entity.StatusSent:      {entity.StatusViewed, entity.StatusPaid, entity.StatusOverdue, entity.StatusCancelled},
	entity.StatusViewed:    {entity.StatusPaid, entity.StatusOverdue, entity.StatusCancelled},
	entity.StatusOverdue:   {entity.StatusPaid, entity.StatusCancelled},
	entity.StatusPaid:      {},
	entity.StatusCancelled: {},
}

// AllowedFrom devuelve los destinos válidos desde un estado (vacío = DRAFT).
func AllowedFrom(from entity.InvoiceStatus) []entity.InvoiceStatus {
	next := allowed[entity.NormalizeStatus(from)]
	out := make([]entity.InvoiceStatus, len(next))
	copy(out, next)
	return out
}

// IsValidTransition es total sobre cualquier par; un estado desconocido no tiene salidas.
func IsValidTransition(from, to entity.InvoiceStatus) bool {
	for _, s := range allowed[entity.NormalizeStatus(from)] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition devuelve un error de validación que nombra ambos estados.
func ValidateTransition(from, to entity.InvoiceStatus) error {
	if IsValidTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: Cannot transition from %s to %s",
		domain.ErrInvalidStatusTransition, entity.NormalizeStatus(from), to)
}

// Apply es la transición validada: valida, aplica el estado y sella el timestamp
// correspondiente (sentAt, paidAt, cancelledAt). Si la transición es inválida no modifica inv.
func Apply(inv *entity.Invoice, to entity.InvoiceStatus, now time.Time) error {
	from := inv.EffectiveStatus()
	if err := ValidateTransition(from, to); err != nil {
		return err
	}
	inv.Status = to
	stamp(inv, to, now)
	return nil
}

// ApplyAdministrative es la vía privilegiada (barrido de vencidas, pagos en efectivo):
// no consulta la tabla de transiciones. OVERDUE solo cambia el estado.
func ApplyAdministrative(inv *entity.Invoice, to entity.InvoiceStatus, now time.Time) {
	inv.Status = to
	stamp(inv, to, now)
}

// stamp fija el timestamp del estado destino una sola vez.
func stamp(inv *entity.Invoice, to entity.InvoiceStatus, now time.Time) {
	t := now
	switch to {
	case entity.StatusSent:
		if inv.SentAt == nil {
			inv.SentAt = &t
		}
	case entity.StatusPaid:
		if inv.PaidAt == nil {
			inv.PaidAt = &t
		}
	case entity.StatusCancelled:
		if inv.CancelledAt == nil {
			inv.CancelledAt = &t
		}
	}
}
