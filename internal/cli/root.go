// Package cli comandos de operación de invoizoctl.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoizo-api/internal/bootstrap"
	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoizoctl",
	Short: "Operations CLI for the invoice API",
	Long: `invoizoctl runs the maintenance tasks of the invoice API outside the HTTP
server: legacy data backfill, the daily overdue sweep and payment reminders,
encryption key generation and development tokens.

Configuration is read from the same environment variables (or .env file) as the server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig carga y valida la configuración y construye el logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// withContainer arma las dependencias, ejecuta fn y las libera.
func withContainer(ctx context.Context, fn func(*bootstrap.Container) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
