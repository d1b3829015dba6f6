package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/infrastructure/scheduler"
)

type fakeLocker struct {
	held     bool
	err      error
	released int
}

func (f *fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (func(), bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.held {
		return nil, false, nil
	}
	return func() { f.released++ }, true, nil
}

func TestAdd_ExpresionInvalida(t *testing.T) {
	s := scheduler.New(time.UTC, nil, nil)
	err := s.Add("overdue-sweep", "not a cron", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overdue-sweep")

	require.NoError(t, s.Add("overdue-sweep", "0 1 * * *", func(context.Context) error { return nil }))
}

func TestRunNow_ConCandado(t *testing.T) {
	locker := &fakeLocker{}
	s := scheduler.New(time.UTC, locker, nil)
	calls := 0

	ran := s.RunNow(context.Background(), "job", func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	assert.True(t, ran)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, locker.released)
}

func TestRunNow_CandadoTomadoOmite(t *testing.T) {
	s := scheduler.New(time.UTC, &fakeLocker{held: true}, nil)
	calls := 0
	ran := s.RunNow(context.Background(), "job", func(context.Context) error { calls++; return nil })
	assert.False(t, ran)
	assert.Zero(t, calls)
}

func TestRunNow_SinRedisEjecutaIgual(t *testing.T) {
	s := scheduler.New(time.UTC, &fakeLocker{err: errors.New("redis down")}, nil)
	calls := 0
	ran := s.RunNow(context.Background(), "job", func(context.Context) error { calls++; return errors.New("fallo") })
	assert.True(t, ran)
	assert.Equal(t, 1, calls)
}

func TestStartStop(t *testing.T) {
	s := scheduler.New(nil, nil, nil)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
