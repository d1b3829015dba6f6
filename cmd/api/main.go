package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/invoizo-api/docs"
	"github.com/jhoicas/invoizo-api/internal/bootstrap"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/invoizo-api/internal/interfaces/http"
	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Invoizo API
// @version                     1.0
// @description                 Ciclo de vida de facturas con GST: estados, exportación, recordatorios y pagos en efectivo.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// run libera sus recursos antes de volver.
	if err := run(cfg, log, quit); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
}

// run arranca servidor y scheduler y bloquea hasta recibir de quit. Cualquier
// fallo de arranque vuelve como error después de liberar lo ya inicializado.
func run(cfg *config.Config, log *logger.Logger, quit <-chan os.Signal) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	container, err := bootstrap.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("inicializar dependencias: %w", err)
	}
	defer container.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Invoizo API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Invoices:  container.Invoices,
		Export:    container.Export,
		PDF:       container.PDF,
		Email:     container.Email,
		Payments:  container.Payments,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = container.NewScheduler()
		if err != nil {
			return fmt.Errorf("programar jobs: %w", err)
		}
		sched.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-quit
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
