// Package overdue barrido diario que marca como OVERDUE las facturas vencidas.
package overdue

import (
	"context"
	"time"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// InvoiceStore lo que el barrido necesita del servicio de facturas.
type InvoiceStore interface {
	FetchAllByStatus(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error)
	MarkAdministrative(ctx context.Context, inv *entity.Invoice, to entity.InvoiceStatus) (*entity.Invoice, error)
	Now() time.Time
}

// Result resumen de una ejecución.
type Result struct {
	Checked int
	Updated int
	Skipped int // sin fecha de vencimiento o con formato inválido
	Failed  int
}

// Sweeper marca OVERDUE las facturas SENT/VIEWED con dueDate anterior a hoy.
type Sweeper struct {
	store InvoiceStore
	loc   *time.Location
	log   *logger.Logger
}

// NewSweeper construye el barrido; loc define qué es "hoy" (nil = Local).
func NewSweeper(store InvoiceStore, loc *time.Location, log *logger.Logger) *Sweeper {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{store: store, loc: loc, log: log.WithComponent("overdue-sweep")}
}

// Run ejecuta un barrido. Es idempotente: las facturas ya OVERDUE no se vuelven a cargar.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	var res Result
	candidates, err := s.store.FetchAllByStatus(ctx, entity.StatusSent, entity.StatusViewed)
	if err != nil {
		s.log.Error().Err(err).Msg("load overdue candidates")
		return res, err
	}
	today := startOfDay(s.store.Now(), s.loc)

	for _, inv := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++
		due, ok := inv.DueDate(s.loc)
		if !ok {
			res.Skipped++
			s.log.Warn().
				Str("invoice_id", inv.ID).
				Str("due_date", inv.Invoice.DueDate).
				Msg("missing or unparsable due date, skipping")
			continue
		}
		if !due.Before(today) {
			continue
		}
		if _, err := s.store.MarkAdministrative(ctx, inv, entity.StatusOverdue); err != nil {
			res.Failed++
			s.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("mark invoice overdue")
			continue
		}
		res.Updated++
		s.log.Info().Str("invoice_id", inv.ID).Str("due_date", inv.Invoice.DueDate).Msg("invoice marked overdue")
	}

	s.log.Info().
		Int("checked", res.Checked).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("overdue sweep finished")
	return res, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
