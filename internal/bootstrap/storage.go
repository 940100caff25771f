// Package bootstrap arma el backend de almacenamiento elegido por configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/bev-flow/internal/application/inventory"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/infrastructure/postgres"
	"github.com/jhoicas/bev-flow/internal/infrastructure/sqlite"
	"github.com/jhoicas/bev-flow/pkg/config"
)

// Storage repositorios y runner de transacciones de un backend, más su cierre.
type Storage struct {
	Driver    string
	TxRunner  inventory.TxRunner
	Ledger    repository.LedgerRepository
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Close     func()
}

// OpenStorage abre SQLite (local) o PostgreSQL (alojado) según cfg.Driver.
func OpenStorage(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:    cfg.Driver,
			TxRunner:  sqlite.NewTxRunner(db),
			Ledger:    sqlite.NewLedgerRepository(db),
			Products:  sqlite.NewProductRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Close:     func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:    cfg.Driver,
			TxRunner:  postgres.NewTxRunner(pool),
			Ledger:    postgres.NewLedgerRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("backend de almacenamiento desconocido %q", cfg.Driver)
	}
}
