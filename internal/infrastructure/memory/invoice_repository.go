// Package memory repositorio en memoria: desarrollo local (DB_DRIVER=memory) y tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo guarda copias profundas; nunca expone punteros internos.
type InvoiceRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Invoice
	seq  map[string]int64 // orden de inserción
	next int64
	now  func() time.Time
}

// NewInvoiceRepository construye el repositorio vacío.
func NewInvoiceRepository() *InvoiceRepo {
	return &InvoiceRepo{
		byID: make(map[string]*entity.Invoice),
		seq:  make(map[string]int64),
		now:  time.Now,
	}
}

// Save inserta o reemplaza por id.
func (r *InvoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	now := r.now()
	if prev, ok := r.byID[invoice.ID]; ok {
		if invoice.CreatedAt.IsZero() {
			invoice.CreatedAt = prev.CreatedAt
		}
	} else {
		r.next++
		r.seq[invoice.ID] = r.next
		if invoice.CreatedAt.IsZero() {
			invoice.CreatedAt = now
		}
	}
	invoice.LastUpdatedAt = now
	r.byID[invoice.ID] = Clone(invoice)
	return Clone(invoice), nil
}

// FindByID devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return Clone(inv), nil
}

// FindByOwner facturas del dueño en orden de alta.
func (r *InvoiceRepo) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Invoice, error) {
	return r.filter(ctx, func(inv *entity.Invoice) bool { return inv.OwnerID == ownerID })
}

// FindByOwnerAndID devuelve (nil, nil) si no existe o es de otro dueño.
func (r *InvoiceRepo) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Invoice, error) {
	inv, err := r.FindByID(ctx, id)
	if err != nil || inv == nil || inv.OwnerID != ownerID {
		return nil, err
	}
	return inv, nil
}

// FindByOwnerAndStatus compara el estado efectivo (vacío = DRAFT).
func (r *InvoiceRepo) FindByOwnerAndStatus(ctx context.Context, ownerID string, status entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return r.filter(ctx, func(inv *entity.Invoice) bool {
		return inv.OwnerID == ownerID && inv.EffectiveStatus() == status
	})
}

// FindByStatusIn recorre todos los dueños.
func (r *InvoiceRepo) FindByStatusIn(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error) {
	set := make(map[entity.InvoiceStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return r.filter(ctx, func(inv *entity.Invoice) bool {
		_, ok := set[inv.EffectiveStatus()]
		return ok
	})
}

// Delete borra por id; no falla si no existe.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	delete(r.seq, id)
	return nil
}

// All devuelve todas las facturas (solo lectura; usado por la migración).
func (r *InvoiceRepo) All(ctx context.Context) ([]*entity.Invoice, error) {
	return r.filter(ctx, func(*entity.Invoice) bool { return true })
}

func (r *InvoiceRepo) filter(ctx context.Context, keep func(*entity.Invoice) bool) ([]*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range r.byID {
		if keep(inv) {
			out = append(out, Clone(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] < r.seq[out[j].ID] })
	return out, nil
}

// Clone copia profunda de la factura.
func Clone(in *entity.Invoice) *entity.Invoice {
	if in == nil {
		return nil
	}
	out := *in
	if in.Items != nil {
		out.Items = append([]entity.Item(nil), in.Items...)
	}
	if in.GSTDetails != nil {
		d := *in.GSTDetails
		out.GSTDetails = &d
	}
	out.SentAt = cloneTime(in.SentAt)
	out.PaidAt = cloneTime(in.PaidAt)
	out.CancelledAt = cloneTime(in.CancelledAt)
	if in.PaymentDetails != nil {
		p := *in.PaymentDetails
		p.PaymentDate = cloneTime(in.PaymentDetails.PaymentDate)
		out.PaymentDetails = &p
	}
	if in.PaymentReminders != nil {
		out.PaymentReminders = make([]entity.PaymentReminder, len(in.PaymentReminders))
		for i, rem := range in.PaymentReminders {
			rem.SentDate = cloneTime(rem.SentDate)
			out.PaymentReminders[i] = rem
		}
	}
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
