package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bev-flow/internal/application/analytics"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/bootstrap"
	httpRouter "github.com/jhoicas/bev-flow/internal/interfaces/http"
	"github.com/jhoicas/bev-flow/pkg/config"
	"github.com/jhoicas/bev-flow/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Str("demand_source", cfg.Analytics.DemandSource).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("db_driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer storage.Close()

	ledgerUC := inventory.NewLedgerReconcilerUseCase(storage.TxRunner, storage.Ledger, log.Zerolog())
	analyticsUC := analytics.NewReorderAnalyticsUseCase(
		storage.Products, storage.Ledger, storage.Movements,
		analytics.ReorderOptions{
			DemandSource: cfg.Analytics.DemandSource,
			LookbackDays: cfg.Analytics.LookbackDays,
		},
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en http://localhost:<port>/docs (solo si el archivo existe)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "BEV Flow API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		Analytics: analyticsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
