// Comando reseed: reconstruye el libro diario de stock de un rango de fechas
// a partir de ventas completadas y recepciones de órdenes de compra.
//
//	go run ./cmd/reseed -start 2026-01-01 -end 2026-01-31
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/bootstrap"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
	"github.com/jhoicas/bev-flow/pkg/config"
	"github.com/jhoicas/bev-flow/pkg/logger"
)

func main() {
	today := stockledger.FormatDate(time.Now())
	start := flag.String("start", "", "primer día a reconstruir (YYYY-MM-DD)")
	end := flag.String("end", today, "último día a reconstruir (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: "reseed"})

	if *start == "" {
		log.Error().Msg("falta -start")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.OpenStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("db_driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer storage.Close()

	uc := inventory.NewLedgerReconcilerUseCase(storage.TxRunner, storage.Ledger, log.Zerolog())
	res, err := uc.ReseedFromRequest(ctx, dto.ReseedRequest{StartDate: *start, EndDate: *end})
	if err != nil {
		log.Error().Err(err).Str("start", *start).Str("end", *end).Msg("reseed fallido")
		storage.Close()
		os.Exit(1)
	}

	log.Info().
		Str("start", res.StartDate).
		Str("end", res.EndDate).
		Int("days", res.Days).
		Int64("deleted", res.Deleted).
		Int("created", res.Created).
		Str("db_driver", storage.Driver).
		Msg("reseed completado")
}
