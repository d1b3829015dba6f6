package reminder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/reminder"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) SendReminder(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func setup(t *testing.T, sender *fakeSender) (*reminder.Service, *memory.InvoiceRepo) {
	t.Helper()
	repo := memory.NewInvoiceRepository()
	svc := invoicing.NewService(repo, nil, nil, invoicing.WithClock(func() time.Time { return now }))
	return reminder.NewService(svc, sender, time.UTC, nil), repo
}

func seed(t *testing.T, repo *memory.InvoiceRepo, id, due, email string) {
	t.Helper()
	_, err := repo.Save(context.Background(), &entity.Invoice{
		ID:         id,
		OwnerID:    "user-a",
		Status:     entity.StatusSent,
		Company:    entity.Party{Name: "Acme Traders"},
		Billing:    entity.Party{Name: "Ravi", Email: email},
		Invoice:    entity.InvoiceDetails{Number: "INV-" + id, DueDate: due},
		Items:      []entity.Item{{Qty: 2, Amount: 500}},
		GSTDetails: &entity.GSTDetails{GSTTotal: 180},
	})
	require.NoError(t, err)
}

func get(t *testing.T, repo *memory.InvoiceRepo, id string) *entity.Invoice {
	t.Helper()
	inv, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección del tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestDue_Tipos(t *testing.T) {
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		due  time.Time
		want entity.ReminderType
		ok   bool
	}{
		{today.AddDate(0, 0, 2), entity.ReminderTwoDaysBefore, true},
		{today, entity.ReminderDueDate, true},
		{today.AddDate(0, 0, -1), entity.ReminderOverdue, true},
		{today.AddDate(0, 0, 1), "", false},
		{today.AddDate(0, 0, 5), "", false},
	}
	for _, c := range cases {
		got, ok := reminder.Due(today, c.due)
		assert.Equal(t, c.ok, ok, c.due)
		assert.Equal(t, c.want, got, c.due)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejecución
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_DosDiasAntes(t *testing.T) {
	sender := &fakeSender{}
	svc, repo := setup(t, sender)
	seed(t, repo, "a", "2026-06-17", "ravi@example.in")

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, "ravi@example.in", mail.to)
	assert.Equal(t, "Payment Reminder: Invoice #INV-a - Due in 2 Days", mail.subject)
	assert.Contains(t, mail.body, "is due in 2 days on 2026-06-17")
	assert.Contains(t, mail.body, "Invoice Amount: ₹1,180.00")
	assert.Contains(t, mail.body, "Best regards,\nAcme Traders")
	assert.Contains(t, mail.body, "2. Cash Payment: Pay by cash")

	inv := get(t, repo, "a")
	assert.Equal(t, entity.StatusSent, inv.Status)
	require.Len(t, inv.PaymentReminders, 1)
	r := inv.PaymentReminders[0]
	assert.Equal(t, entity.ReminderTwoDaysBefore, r.Type)
	assert.True(t, r.Sent)
	assert.NotEmpty(t, r.ID)
	require.NotNil(t, r.SentDate)
	assert.True(t, r.SentDate.Equal(now))
}

func TestRun_Idempotente(t *testing.T) {
	sender := &fakeSender{}
	svc, repo := setup(t, sender)
	seed(t, repo, "a", "2026-06-15", "ravi@example.in")

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Payment Due Today: Invoice #INV-a", sender.sent[0].subject)
	assert.Len(t, get(t, repo, "a").PaymentReminders, 1)
}

func TestRun_VencidaMarcaOverdue(t *testing.T) {
	sender := &fakeSender{}
	svc, repo := setup(t, sender)
	seed(t, repo, "a", "2026-06-10", "ravi@example.in")

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.MarkedOverdue)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Overdue Payment: Invoice #INV-a", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "was due on 2026-06-10 and is now overdue")
	assert.Equal(t, entity.StatusOverdue, get(t, repo, "a").Status)
}

func TestRun_SinCorreoSoloMarcaEstado(t *testing.T) {
	sender := &fakeSender{}
	svc, repo := setup(t, sender)
	seed(t, repo, "a", "2026-06-10", "")
	seed(t, repo, "b", "2026-06-17", "")

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
	assert.Equal(t, 1, res.MarkedOverdue)
	assert.Equal(t, entity.StatusOverdue, get(t, repo, "a").Status)
	assert.Empty(t, get(t, repo, "b").PaymentReminders)
}

func TestRun_FalloDeCorreoNoRegistra(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc, repo := setup(t, sender)
	seed(t, repo, "a", "2026-06-17", "ravi@example.in")

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, get(t, repo, "a").PaymentReminders)
}

func TestRun_FechaInvalidaSeOmite(t *testing.T) {
	svc, repo := setup(t, &fakeSender{})
	seed(t, repo, "a", "15/06/2026", "ravi@example.in")

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
}

// ──────────────────────────────────────────────────────────────────────────────
// Texto
// ──────────────────────────────────────────────────────────────────────────────

func TestBody_UsaTotalDelPago(t *testing.T) {
	inv := &entity.Invoice{
		Company:        entity.Party{Name: "Acme"},
		Invoice:        entity.InvoiceDetails{Number: "7", DueDate: "2026-06-15"},
		Items:          []entity.Item{{Qty: 1, Amount: 100}},
		PaymentDetails: &entity.PaymentDetails{TotalAmount: 250.5},
	}
	body := reminder.Body(inv, entity.ReminderDueDate)
	assert.Contains(t, body, "Your invoice #7 from Acme is due today (2026-06-15).")
	assert.Contains(t, body, "₹250.50")
	assert.Contains(t, body, "Please make the payment at your earliest convenience.")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", reminder.FormatAmount(0))
	assert.Equal(t, "99.99", reminder.FormatAmount(99.99))
	assert.Equal(t, "1,180.00", reminder.FormatAmount(1180))
}
