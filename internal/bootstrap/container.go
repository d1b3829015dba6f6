// Package bootstrap arma las dependencias a partir de la configuración; lo usan
// el servidor HTTP y invoizoctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/notification"
	"github.com/jhoicas/invoizo-api/internal/application/overdue"
	"github.com/jhoicas/invoizo-api/internal/application/payment"
	"github.com/jhoicas/invoizo-api/internal/application/reminder"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/application/retry"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/domain/repository"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/export"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/lock"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/mail"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/memory"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/storage"
	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/encryption"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// InvoiceStore repositorio con listado completo (backfill).
type InvoiceStore interface {
	repository.InvoiceRepository
	All(ctx context.Context) ([]*entity.Invoice, error)
}

// Container dependencias ya construidas.
type Container struct {
	Config    *config.Config
	Log       *logger.Logger
	Store     InvoiceStore
	Invoices  *invoicing.Service
	Export    *reporting.ExportUseCase
	PDF       *reporting.PDFUseCase
	Email     *notification.EmailService
	Payments  *payment.CashPaymentRecorder
	Sweeper   *overdue.Sweeper
	Reminders *reminder.Service
	Locker    scheduler.JobLocker

	closers []func()
}

// New conecta la persistencia y los adaptadores opcionales (SMTP, GCS, Redis).
// Los opcionales que no se pueden inicializar se registran y se omiten.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	key, err := cfg.Encryption.KeyBytes()
	if err != nil {
		return nil, err
	}
	cipher, err := encryption.New(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: %w", err)
	}

	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("using in-memory invoice store; data is lost on restart")
		c.Store = memory.NewInvoiceRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				c.Close()
				return nil, err
			}
		}
		c.Store = postgres.NewInvoiceRepository(pool, cipher)
	}

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		c.Close()
		return nil, err
	}

	exec := retry.NewExecutor(retry.Policy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay,
		Multiplier:   2,
	}, log)

	var opts []invoicing.Option
	if cfg.Storage.Enabled() {
		thumbs, err := storage.NewGCSThumbnailStore(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("thumbnail storage unavailable, thumbnails disabled")
		} else {
			c.closers = append(c.closers, func() { _ = thumbs.Close() })
			opts = append(opts, invoicing.WithThumbnailStore(thumbs))
		}
	}
	c.Invoices = invoicing.NewService(c.Store, exec, log, opts...)

	var mailer notification.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}
	c.Email = notification.NewEmailService(mailer, log)

	c.Export = reporting.NewExportUseCase(c.Invoices, export.NewExporter(log), log)
	c.PDF = reporting.NewPDFUseCase(c.Invoices, pdf.NewMarotoInvoiceRenderer(), log)
	c.Payments = payment.NewCashPaymentRecorder(c.Invoices, log)
	c.Sweeper = overdue.NewSweeper(c.Invoices, loc, log)
	c.Reminders = reminder.NewService(c.Invoices, c.Email, loc, log)

	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; scheduled jobs run without distributed lock")
		} else {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
			c.Locker = lock.NewRedisLocker(rdb, cfg.App.Name+":jobs", log)
		}
	}
	return c, nil
}

// Jobs nombres de los jobs programados.
const (
	JobOverdueSweep     = "overdue-sweep"
	JobPaymentReminders = "payment-reminders"
)

// SweepOverdue job del barrido de vencidas.
func (c *Container) SweepOverdue(ctx context.Context) error {
	_, err := c.Sweeper.Run(ctx)
	return err
}

// SendReminders job de recordatorios.
func (c *Container) SendReminders(ctx context.Context) error {
	_, err := c.Reminders.Run(ctx)
	return err
}

// NewScheduler registra los dos jobs diarios con sus expresiones cron.
func (c *Container) NewScheduler() (*scheduler.Scheduler, error) {
	loc, err := c.Config.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	s := scheduler.New(loc, c.Locker, c.Log)
	if err := s.Add(JobOverdueSweep, c.Config.Scheduler.OverdueCron, c.SweepOverdue); err != nil {
		return nil, err
	}
	if err := s.Add(JobPaymentReminders, c.Config.Scheduler.ReminderCron, c.SendReminders); err != nil {
		return nil, err
	}
	return s, nil
}

// Close libera conexiones en orden inverso.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
