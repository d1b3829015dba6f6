package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/encryption"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	return &config.Config{
		App:        config.AppConfig{Name: "invoizo-test"},
		DB:         config.DBConfig{Driver: "memory"},
		JWT:        config.JWTConfig{Secret: "s"},
		HTTP:       config.HTTPConfig{Host: "127.0.0.1", Port: 0},
		Retry:      config.RetryConfig{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond},
		Encryption: config.EncryptionConfig{Key: key},
	}
}

// ─── Errores de arranque ──────────────────────────────────────────────────────

func TestRun_ConfigInvalidaDevuelveError(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.JWT.Secret = ""

	err := run(cfg, logger.Nop(), make(chan os.Signal))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestRun_CronInvalidoDevuelveErrorSinSalir(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Scheduler = config.SchedulerConfig{Enabled: true, OverdueCron: "no es cron", ReminderCron: "0 9 * * *"}

	done := make(chan error, 1)
	go func() { done <- run(cfg, logger.Nop(), make(chan os.Signal)) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "programar jobs")
	case <-time.After(5 * time.Second):
		t.Fatal("run debía volver con error antes de escuchar")
	}
}
