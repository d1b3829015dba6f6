// Package reminder recordatorios de pago diarios: dos días antes, el día del
// vencimiento y una vez vencida la factura.
package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/domain/lifecycle"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// InvoiceStore lo que el job necesita del servicio de facturas.
type InvoiceStore interface {
	FetchAllByStatus(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error)
	Persist(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
	Now() time.Time
}

// Sender envía el correo del recordatorio.
type Sender interface {
	SendReminder(ctx context.Context, to, subject, body string) error
}

// Result resumen de una ejecución.
type Result struct {
	Checked       int
	Sent          int
	MarkedOverdue int
	Skipped       int
	Failed        int
}

// Service job de recordatorios.
type Service struct {
	store  InvoiceStore
	sender Sender
	loc    *time.Location
	log    *logger.Logger
}

// NewService construye el job; loc define qué es "hoy" (nil = Local).
func NewService(store InvoiceStore, sender Sender, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, sender: sender, loc: loc, log: log.WithComponent("payment-reminders")}
}

// Due decide qué recordatorio toca hoy para una fecha de vencimiento.
func Due(today, due time.Time) (entity.ReminderType, bool) {
	switch {
	case today.Equal(due.AddDate(0, 0, -2)):
		return entity.ReminderTwoDaysBefore, true
	case today.Equal(due):
		return entity.ReminderDueDate, true
	case today.After(due):
		return entity.ReminderOverdue, true
	}
	return "", false
}

// Run revisa las facturas SENT y VIEWED. Cada tipo de recordatorio se envía una
// sola vez por factura; las vencidas además pasan a OVERDUE.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var res Result
	candidates, err := s.store.FetchAllByStatus(ctx, entity.StatusSent, entity.StatusViewed)
	if err != nil {
		s.log.Error().Err(err).Msg("load reminder candidates")
		return res, err
	}
	now := s.store.Now()
	today := startOfDay(now, s.loc)

	for _, inv := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++
		due, ok := inv.DueDate(s.loc)
		if !ok {
			res.Skipped++
			s.log.Warn().Str("invoice_id", inv.ID).Str("due_date", inv.Invoice.DueDate).Msg("missing or unparsable due date, skipping")
			continue
		}
		kind, ok := Due(today, due)
		if !ok {
			continue
		}

		changed := false
		if !inv.HasReminder(kind) {
			sent, err := s.send(ctx, inv, kind, today, now)
			if err != nil {
				res.Failed++
			}
			if sent {
				res.Sent++
				changed = true
			}
		}
		if kind == entity.ReminderOverdue && inv.EffectiveStatus() != entity.StatusOverdue {
			lifecycle.ApplyAdministrative(inv, entity.StatusOverdue, now)
			res.MarkedOverdue++
			changed = true
		}
		if !changed {
			continue
		}
		if _, err := s.store.Persist(ctx, inv); err != nil {
			res.Failed++
			s.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("persist reminder state")
		}
	}

	s.log.Info().
		Int("checked", res.Checked).
		Int("sent", res.Sent).
		Int("marked_overdue", res.MarkedOverdue).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("payment reminders finished")
	return res, nil
}

// send envía el correo y registra el recordatorio. Sin correo de facturación no se envía nada.
func (s *Service) send(ctx context.Context, inv *entity.Invoice, kind entity.ReminderType, today, now time.Time) (bool, error) {
	to := strings.TrimSpace(inv.Billing.Email)
	if to == "" {
		s.log.Warn().Str("invoice_id", inv.ID).Str("type", string(kind)).Msg("no billing email, reminder not sent")
		return false, nil
	}
	subject := Subject(inv, kind)
	body := Body(inv, kind)
	if err := s.sender.SendReminder(ctx, to, subject, body); err != nil {
		s.log.Error().Err(err).Str("invoice_id", inv.ID).Str("type", string(kind)).Msg("send payment reminder")
		return false, err
	}
	sentAt := now
	inv.PaymentReminders = append(inv.PaymentReminders, entity.PaymentReminder{
		ID:            uuid.NewString(),
		Type:          kind,
		ScheduledDate: today,
		SentDate:      &sentAt,
		Sent:          true,
		EmailSubject:  subject,
		EmailBody:     body,
	})
	s.log.Info().Str("invoice_id", inv.ID).Str("type", string(kind)).Str("to", to).Msg("payment reminder sent")
	return true, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
