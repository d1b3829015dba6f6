// Package invoicing casos de uso del ciclo de vida de la factura.
package invoicing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoizo-api/internal/application/retry"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/domain/gst"
	"github.com/jhoicas/invoizo-api/internal/domain/lifecycle"
	"github.com/jhoicas/invoizo-api/internal/domain/repository"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// Service orquesta validación, cálculo de GST y persistencia con reintentos.
type Service struct {
	repo   repository.InvoiceRepository
	retry  *retry.Executor
	thumbs ThumbnailStore
	log    *logger.Logger
	now    func() time.Time
}

// Option configura el servicio.
type Option func(*Service)

// WithThumbnailStore activa la subida de miniaturas.
func WithThumbnailStore(store ThumbnailStore) Option {
	return func(s *Service) { s.thumbs = store }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio.
func NewService(repo repository.InvoiceRepository, exec *retry.Executor, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if exec == nil {
		exec = retry.NewExecutor(retry.DefaultPolicy(), log)
	}
	s := &Service{repo: repo, retry: exec, log: log.WithComponent("invoicing"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now reloj del servicio.
func (s *Service) Now() time.Time { return s.now() }

// Save crea o actualiza la factura de inv.OwnerID.
func (s *Service) Save(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	return s.SaveWithThumbnail(ctx, inv, nil)
}

// SaveWithThumbnail igual que Save; si thumbnail no es nil la sube (best effort).
// En facturas existentes el estado, los timestamps, el pago y los recordatorios se
// conservan del registro guardado: solo cambian vía UpdateStatus o la vía administrativa.
func (s *Service) SaveWithThumbnail(ctx context.Context, inv *entity.Invoice, thumbnail []byte) (*entity.Invoice, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice is required", domain.ErrInvalidInput)
	}
	if inv.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerId is required", domain.ErrInvalidInput)
	}

	isNew := true
	if inv.ID != "" {
		existing, err := s.GetByID(ctx, inv.ID)
		switch {
		case err == nil:
			if existing.OwnerID != inv.OwnerID {
				return nil, domain.ErrNotFound
			}
			carryLifecycle(inv, existing)
			isNew = false
		case errors.Is(err, domain.ErrNotFound):
			// id asignado por el cliente: se trata como alta
		default:
			return nil, err
		}
	}

	if inv.Status == "" {
		inv.Status = entity.StatusDraft
	} else {
		st, ok := entity.ParseStatus(string(inv.Status))
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, inv.Status)
		}
		inv.Status = st
	}
	if isNew {
		resetLifecycle(inv, s.now())
	}
	if err := validateAndCompute(inv); err != nil {
		return nil, err
	}

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if len(thumbnail) > 0 && s.thumbs != nil {
		url, err := s.thumbs.UploadThumbnail(ctx, inv.OwnerID, inv.ID, thumbnail)
		if err != nil {
			s.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("thumbnail upload failed, saving without it")
		} else {
			inv.ThumbnailURL = url
		}
	}

	return s.persist(ctx, "save invoice", inv)
}

func carryLifecycle(inv, existing *entity.Invoice) {
	inv.Status = existing.EffectiveStatus()
	inv.SentAt = existing.SentAt
	inv.PaidAt = existing.PaidAt
	inv.CancelledAt = existing.CancelledAt
	inv.PaymentDetails = existing.PaymentDetails
	inv.PaymentReminders = existing.PaymentReminders
	inv.CreatedAt = existing.CreatedAt
	if inv.ThumbnailURL == "" {
		inv.ThumbnailURL = existing.ThumbnailURL
	}
}

// resetLifecycle en un alta los campos de ciclo de vida son del servidor: se descartan
// los del cliente y solo se sella el timestamp del estado inicial.
func resetLifecycle(inv *entity.Invoice, now time.Time) {
	inv.SentAt = nil
	inv.PaidAt = nil
	inv.CancelledAt = nil
	inv.PaymentReminders = nil
	inv.CreatedAt = time.Time{}
	inv.LastUpdatedAt = time.Time{}
	if pd := inv.PaymentDetails; pd != nil {
		pd.PaymentStatus = entity.PaymentPending
		pd.PaymentDate = nil
	}
	lifecycle.ApplyAdministrative(inv, inv.Status, now)
}

func validateAndCompute(inv *entity.Invoice) error {
	switch inv.TransactionType {
	case "":
		inv.TransactionType = entity.IntraState
	case entity.IntraState, entity.InterState:
	default:
		return fmt.Errorf("%w: unknown transactionType %q", domain.ErrInvalidInput, inv.TransactionType)
	}
	inv.CompanyGSTNumber = strings.TrimSpace(inv.CompanyGSTNumber)
	if err := gst.ValidateGSTNumber(inv.CompanyGSTNumber); err != nil {
		return err
	}
	for i, it := range inv.Items {
		if it.Qty <= 0 {
			return fmt.Errorf("%w: item %d: qty must be a positive integer", domain.ErrInvalidInput, i+1)
		}
		if it.Amount < 0 {
			return fmt.Errorf("%w: item %d: amount must not be negative", domain.ErrInvalidInput, i+1)
		}
	}
	if err := gst.ApplyToItems(inv.Items, inv.TransactionType); err != nil {
		return err
	}
	details := gst.CalculateInvoiceGST(inv.Items)
	inv.GSTDetails = &details
	return nil
}

// Fetch lista las facturas del dueño.
func (s *Service) Fetch(ctx context.Context, ownerID string) ([]*entity.Invoice, error) {
	return retry.Run(ctx, s.retry, "fetch invoices", func(ctx context.Context) ([]*entity.Invoice, error) {
		return s.repo.FindByOwner(ctx, ownerID)
	})
}

// FetchByStatus filtra por estado efectivo; status vacío equivale a Fetch.
func (s *Service) FetchByStatus(ctx context.Context, ownerID string, status entity.InvoiceStatus) ([]*entity.Invoice, error) {
	if status == "" {
		return s.Fetch(ctx, ownerID)
	}
	return retry.Run(ctx, s.retry, "fetch invoices by status", func(ctx context.Context) ([]*entity.Invoice, error) {
		return s.repo.FindByOwnerAndStatus(ctx, ownerID, status)
	})
}

// FetchByIDs devuelve las facturas del dueño cuyo id está en ids, en el orden de Fetch.
// ids vacío devuelve todas.
func (s *Service) FetchByIDs(ctx context.Context, ownerID string, ids []string) ([]*entity.Invoice, error) {
	all, err := s.Fetch(ctx, ownerID)
	if err != nil || len(ids) == 0 {
		return all, err
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]*entity.Invoice, 0, len(ids))
	for _, inv := range all {
		if _, ok := wanted[inv.ID]; ok {
			out = append(out, inv)
		}
	}
	return out, nil
}

// FetchAllByStatus facturas de todos los dueños en los estados dados (jobs programados).
func (s *Service) FetchAllByStatus(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return retry.Run(ctx, s.retry, "fetch invoices by status (all owners)", func(ctx context.Context) ([]*entity.Invoice, error) {
		return s.repo.FindByStatusIn(ctx, statuses...)
	})
}

// UpdateStatus transición validada. Una transición inválida no escribe nada.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, to entity.InvoiceStatus) (*entity.Invoice, error) {
	inv, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Apply(inv, to, s.now()); err != nil {
		return nil, err
	}
	saved, err := s.persist(ctx, "update invoice status", inv)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("invoice_id", id).Str("status", string(to)).Msg("invoice status updated")
	return saved, nil
}

// Remove borra la factura del dueño.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.retry.Do(ctx, "delete invoice", func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// GetByID carga por id sin comprobar el dueño (uso interno y administrativo).
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := retry.Run(ctx, s.retry, "get invoice", func(ctx context.Context) (*entity.Invoice, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.Status = inv.EffectiveStatus()
	return inv, nil
}

// Persist guarda una factura ya cargada tal cual (vía administrativa: sin validador).
func (s *Service) Persist(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	return s.persist(ctx, "update invoice", inv)
}

// MarkAdministrative aplica un estado por la vía privilegiada y persiste.
func (s *Service) MarkAdministrative(ctx context.Context, inv *entity.Invoice, to entity.InvoiceStatus) (*entity.Invoice, error) {
	lifecycle.ApplyAdministrative(inv, to, s.now())
	return s.Persist(ctx, inv)
}

func (s *Service) findOwned(ctx context.Context, ownerID, id string) (*entity.Invoice, error) {
	inv, err := retry.Run(ctx, s.retry, "get owned invoice", func(ctx context.Context) (*entity.Invoice, error) {
		return s.repo.FindByOwnerAndID(ctx, ownerID, id)
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	inv.Status = inv.EffectiveStatus()
	return inv, nil
}

func (s *Service) persist(ctx context.Context, op string, inv *entity.Invoice) (*entity.Invoice, error) {
	saved, err := retry.Run(ctx, s.retry, op, func(ctx context.Context) (*entity.Invoice, error) {
		return s.repo.Save(ctx, inv)
	})
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", inv.ID).Str("op", op).Msg("persist invoice")
		return nil, err
	}
	return saved, nil
}
