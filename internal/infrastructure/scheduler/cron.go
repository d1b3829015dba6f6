// Package scheduler ejecuta los jobs diarios (barrido de vencidas, recordatorios) con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// JobLocker candado opcional entre réplicas.
type JobLocker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

// Job unidad de trabajo programada.
type Job func(ctx context.Context) error

// Scheduler envuelve cron.Cron con timeout por ejecución, candado y logging.
type Scheduler struct {
	cron    *cron.Cron
	locker  JobLocker
	timeout time.Duration
	log     *logger.Logger
}

// New construye el scheduler en la zona horaria dada. locker puede ser nil.
func New(loc *time.Location, locker JobLocker, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		locker:  locker,
		timeout: 30 * time.Minute,
		log:     log.WithComponent("scheduler"),
	}
}

// Add registra un job con una expresión cron estándar de 5 campos.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.RunNow(context.Background(), name, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("job scheduled")
	return nil
}

// RunNow ejecuta el job una vez con las mismas reglas que la ejecución programada.
// Devuelve false si otro proceso tenía el candado.
func (s *Scheduler) RunNow(ctx context.Context, name string, job Job) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.locker != nil {
		release, ok, err := s.locker.TryLock(ctx, name, s.timeout)
		if err != nil {
			s.log.Warn().Err(err).Str("job", name).Msg("lock unavailable; running without lock")
		} else if !ok {
			s.log.Info().Str("job", name).Msg("job already running elsewhere, skipping")
			return false
		} else {
			defer release()
		}
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Dur("elapsed", time.Since(start)).Msg("job failed")
		return true
	}
	s.log.Info().Str("job", name).Dur("elapsed", time.Since(start)).Msg("job finished")
	return true
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el scheduler y espera a los jobs en curso o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out with jobs still running")
	}
}
