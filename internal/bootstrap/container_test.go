package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/bootstrap"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/encryption"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	return &config.Config{
		App: config.AppConfig{Name: "invoizo-test"},
		DB:  config.DBConfig{Driver: "memory"},
		JWT: config.JWTConfig{Secret: "s"},
		Scheduler: config.SchedulerConfig{
			OverdueCron:  "0 1 * * *",
			ReminderCron: "0 9 * * *",
			Timezone:     "UTC",
		},
		Retry:      config.RetryConfig{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond},
		Encryption: config.EncryptionConfig{Key: key},
	}
}

func TestNew_MemoriaSinOpcionales(t *testing.T) {
	cfg := memoryConfig(t)
	require.NoError(t, cfg.Validate())

	c, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Locker)
	saved, err := c.Invoices.Save(context.Background(), &entity.Invoice{OwnerID: "user-a"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, saved.Status)

	res, err := c.PDF.Render(context.Background(), "user-a", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)

	require.NoError(t, c.SweepOverdue(context.Background()))
	require.NoError(t, c.SendReminders(context.Background()))

	s, err := c.NewScheduler()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNew_ClaveInvalida(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Encryption.Key = "short"
	_, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNewScheduler_CronInvalido(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Scheduler.OverdueCron = "every day"
	c, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.NewScheduler()
	assert.Error(t, err)
}
