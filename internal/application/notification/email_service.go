// Package notification envío de facturas y recordatorios por correo.
package notification

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/logger"
	"github.com/jhoicas/invoizo-api/pkg/validation"
)

// Attachment adjunto del mensaje.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message correo de texto plano.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer puerto de transporte (SMTP en producción).
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const (
	invoiceSubject = "Your Invoice"
	invoiceBody    = "Dear Customer,\n\nPlease find attached your invoice.\n\nThank you!"
)

// EmailService valida destinatarios y compone los correos.
type EmailService struct {
	mailer Mailer
	log    *logger.Logger
}

// NewEmailService construye el servicio.
func NewEmailService(mailer Mailer, log *logger.Logger) *EmailService {
	if log == nil {
		log = logger.Nop()
	}
	return &EmailService{mailer: mailer, log: log.WithComponent("email")}
}

// SendInvoice envía el archivo de la factura ya renderizado como adjunto.
func (s *EmailService) SendInvoice(ctx context.Context, to string, file Attachment) error {
	if err := validation.ValidateEmail(to); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if len(file.Data) == 0 {
		return fmt.Errorf("%w: invoice file is required", domain.ErrInvalidInput)
	}
	if file.Filename == "" {
		file.Filename = "invoice.pdf"
	}
	err := s.mailer.Send(ctx, Message{
		To:          to,
		Subject:     invoiceSubject,
		Body:        invoiceBody,
		Attachments: []Attachment{file},
	})
	if err != nil {
		return fmt.Errorf("send invoice email: %w", err)
	}
	s.log.Info().Str("to", to).Str("file", file.Filename).Msg("invoice email sent")
	return nil
}

// SendReminder envía un recordatorio de pago.
func (s *EmailService) SendReminder(ctx context.Context, to, subject, body string) error {
	if err := validation.ValidateEmail(to); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.mailer.Send(ctx, Message{To: to, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}
