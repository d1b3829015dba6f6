package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/notification"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/validation"
)

type recordingMailer struct {
	sent []notification.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestSendInvoice(t *testing.T) {
	mailer := &recordingMailer{}
	svc := notification.NewEmailService(mailer, nil)

	err := svc.SendInvoice(context.Background(), "ravi@example.in", notification.Attachment{Filename: "INV-1.pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "ravi@example.in", msg.To)
	assert.Equal(t, "Your Invoice", msg.Subject)
	assert.Contains(t, msg.Body, "Please find attached your invoice.")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "INV-1.pdf", msg.Attachments[0].Filename)
}

func TestSendInvoice_CorreoInvalido(t *testing.T) {
	mailer := &recordingMailer{}
	svc := notification.NewEmailService(mailer, nil)

	err := svc.SendInvoice(context.Background(), "not-an-email", notification.Attachment{Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, validation.ErrEmailInvalid)

	err = svc.SendInvoice(context.Background(), "", notification.Attachment{Data: []byte("x")})
	assert.ErrorIs(t, err, validation.ErrEmailRequired)
	assert.Empty(t, mailer.sent)
}

func TestSendReminder_ErrorDeTransporte(t *testing.T) {
	svc := notification.NewEmailService(&recordingMailer{err: errors.New("smtp down")}, nil)
	err := svc.SendReminder(context.Background(), "ravi@example.in", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}
