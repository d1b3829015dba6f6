// Package retry reintenta operaciones de persistencia ante fallos transitorios.
package retry

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// Policy intentos totales y espera inicial; la espera se duplica en cada reintento.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultPolicy 3 intentos, esperas de 500 ms y 1000 ms.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond, Multiplier: 2}
}

func (p Policy) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = p.Multiplier
	if b.Multiplier <= 0 {
		b.Multiplier = 2
	}
	b.RandomizationFactor = 0
	b.MaxInterval = time.Hour
	b.MaxElapsedTime = 0
	b.Reset()
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithMaxRetries(b, uint64(attempts-1))
}

// Schedule devuelve las esperas entre intentos que aplicaría la política.
func Schedule(p Policy) []time.Duration {
	b := p.newBackOff()
	var out []time.Duration
	for next := b.NextBackOff(); next != backoff.Stop; next = b.NextBackOff() {
		out = append(out, next)
	}
	return out
}

// Executor ejecuta operaciones con la política de reintentos.
type Executor struct {
	policy Policy
	log    *logger.Logger
}

// NewExecutor construye el ejecutor.
func NewExecutor(policy Policy, log *logger.Logger) *Executor {
	if log == nil {
		log = logger.Nop()
	}
	return &Executor{policy: policy, log: log}
}

// Do ejecuta fn. Los errores de dominio se devuelven tal cual y sin reintentar; los
// transitorios se reintentan; el resto, y el agotamiento de intentos, se devuelven
// como *domain.DatabaseConnectionError.
func (e *Executor) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, err := Run(ctx, e, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Run es Do con valor de retorno.
func Run[T any](ctx context.Context, e *Executor, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		attempt++
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		if domain.IsDomainError(err) {
			return res, backoff.Permanent(err)
		}
		if !IsTransient(err) {
			return res, backoff.Permanent(&domain.DatabaseConnectionError{Op: op, Retryable: false, Err: err})
		}
		return res, err
	}
	notify := func(err error, wait time.Duration) {
		e.log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("transient persistence failure, retrying")
	}

	res, err := backoff.RetryNotifyWithData(operation, backoff.WithContext(e.policy.newBackOff(), ctx), notify)
	if err == nil {
		return res, nil
	}
	var dbErr *domain.DatabaseConnectionError
	if domain.IsDomainError(err) || errors.As(err, &dbErr) {
		return res, err
	}
	e.log.Error().Err(err).Str("op", op).Int("attempts", attempt).Msg("persistence operation failed after retries")
	return res, &domain.DatabaseConnectionError{Op: op, Retryable: true, Err: err}
}

// IsTransient clasifica por tipo: TransientError de los adaptadores, timeouts de red
// y conexiones rechazadas o reiniciadas.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *domain.TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
