package retry_test

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/retry"
	"github.com/jhoicas/invoizo-api/internal/domain"
)

func fastExecutor() *retry.Executor {
	return retry.NewExecutor(retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2}, nil)
}

func TestSchedule_PoliticaPorDefecto(t *testing.T) {
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 1000 * time.Millisecond}, retry.Schedule(retry.DefaultPolicy()))
}

func TestDo_TransitorioLuegoExito(t *testing.T) {
	calls := 0
	err := fastExecutor().Do(context.Background(), "save", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return domain.NewTransient(domain.TransientConnection, "save", errors.New("connection reset"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AgotaIntentos(t *testing.T) {
	calls := 0
	err := fastExecutor().Do(context.Background(), "save", func(ctx context.Context) error {
		calls++
		return domain.NewTransient(domain.TransientTimeout, "save", errors.New("i/o timeout"))
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var dbErr *domain.DatabaseConnectionError
	require.True(t, errors.As(err, &dbErr))
	assert.True(t, dbErr.Retryable)
	assert.Equal(t, "save", dbErr.Op)
}

func TestDo_ErrorDeDominioNoSeReintenta(t *testing.T) {
	calls := 0
	want := fmt.Errorf("%w: qty must be positive", domain.ErrInvalidInput)
	err := fastExecutor().Do(context.Background(), "save", func(ctx context.Context) error {
		calls++
		return want
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, want, err)

	var dbErr *domain.DatabaseConnectionError
	assert.False(t, errors.As(err, &dbErr))
}

func TestDo_ErrorNoTransitorio(t *testing.T) {
	calls := 0
	err := fastExecutor().Do(context.Background(), "delete", func(ctx context.Context) error {
		calls++
		return errors.New("syntax error at or near")
	})
	assert.Equal(t, 1, calls)

	var dbErr *domain.DatabaseConnectionError
	require.True(t, errors.As(err, &dbErr))
	assert.False(t, dbErr.Retryable)
}

func TestRun_DevuelveValor(t *testing.T) {
	calls := 0
	v, err := retry.Run(context.Background(), fastExecutor(), "find", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", syscall.ECONNREFUSED
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestDo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ex := retry.NewExecutor(retry.Policy{MaxAttempts: 3, InitialDelay: time.Hour}, nil)

	calls := 0
	err := ex.Do(ctx, "save", func(ctx context.Context) error {
		calls++
		cancel()
		return domain.NewTransient(domain.TransientUnavailable, "save", errors.New("503"))
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, retry.IsTransient(fmt.Errorf("wrap: %w", domain.NewTransient(domain.TransientTimeout, "x", errors.New("t")))))
	assert.True(t, retry.IsTransient(fmt.Errorf("dial: %w", syscall.ECONNRESET)))
	assert.False(t, retry.IsTransient(errors.New("connection refused")), "solo se clasifica por tipo")
	assert.False(t, retry.IsTransient(nil))
}
