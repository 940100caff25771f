package inventory

import (
	"context"

	"github.com/jhoicas/bev-flow/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso. Ambos backends (SQLite y PostgreSQL)
// lo implementan, de modo que un lote de deltas es todo-o-nada en los dos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
