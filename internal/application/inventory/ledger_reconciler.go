package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// DeltaItem delta firmado de ventas y compras para un producto.
type DeltaItem struct {
	ProductID      int64
	SoldDelta      int
	PurchasedDelta int
}

// LedgerReconcilerUseCase mantiene el libro diario de stock consistente frente a ventas y
// recepciones de órdenes de compra (altas, ediciones y anulaciones).
// Es el único escritor de products.current_stock: lo ajusta en la misma transacción que la fila del libro.
type LedgerReconcilerUseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
	log        zerolog.Logger
}

// NewLedgerReconcilerUseCase construye el caso de uso.
func NewLedgerReconcilerUseCase(
	txRunner TxRunner,
	ledgerRepo repository.LedgerRepository,
	log zerolog.Logger,
) *LedgerReconcilerUseCase {
	return &LedgerReconcilerUseCase{
		txRunner:   txRunner,
		ledgerRepo: ledgerRepo,
		log:        log.With().Str("component", "stock_ledger").Logger(),
	}
}

// ApplyDelta aplica un delta a la fila (producto, día), creándola si no existe.
func (uc *LedgerReconcilerUseCase) ApplyDelta(ctx context.Context, productID int64, date time.Time, soldDelta, purchasedDelta int) error {
	return uc.ApplyDeltaBatch(ctx, []DeltaItem{{
		ProductID:      productID,
		SoldDelta:      soldDelta,
		PurchasedDelta: purchasedDelta,
	}}, date)
}

// ApplyDeltaBatch aplica los deltas en orden para un mismo día dentro de una sola transacción.
// Si el ítem k falla se revierten los anteriores y los siguientes no se intentan.
// No recalcula días posteriores: una edición retroactiva no mueve aperturas futuras.
func (uc *LedgerReconcilerUseCase) ApplyDeltaBatch(ctx context.Context, items []DeltaItem, date time.Time) error {
	if len(items) == 0 {
		return nil
	}
	day := stockledger.Day(date)
	batchID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		for i, item := range items {
			if _, err := applyDelta(ctx, ledgerRepo, productRepo, item, day); err != nil {
				return fmt.Errorf("stock ledger: ítem %d (producto %d): %w", i, item.ProductID, err)
			}
			// El ajuste de current_stock usa los deltas crudos: refleja la mutación, no el recorte del libro.
			if err := productRepo.AdjustCurrentStock(ctx, item.ProductID, item.PurchasedDelta-item.SoldDelta); err != nil {
				return fmt.Errorf("stock ledger: ítem %d (producto %d): ajustar stock: %w", i, item.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("batch_id", batchID).
			Str("date", stockledger.FormatDate(day)).
			Int("items", len(items)).
			Msg("lote de deltas revertido")
		return err
	}

	uc.log.Info().
		Str("batch_id", batchID).
		Str("date", stockledger.FormatDate(day)).
		Int("items", len(items)).
		Msg("lote de deltas aplicado")
	return nil
}

// GetEntry devuelve la fila (producto, día) o nil si aún no existe.
func (uc *LedgerReconcilerUseCase) GetEntry(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error) {
	return uc.ledgerRepo.Get(ctx, productID, stockledger.Day(date))
}

// ListRange lista el reporte diario de stock en el rango (inclusivo).
func (uc *LedgerReconcilerUseCase) ListRange(ctx context.Context, filter repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	filter.Start = stockledger.Day(filter.Start)
	filter.End = stockledger.Day(filter.End)
	return uc.ledgerRepo.ListRange(ctx, filter)
}

// applyDelta actualiza o crea la fila del día. Devuelve true si la fila se creó.
func applyDelta(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	item DeltaItem,
	day time.Time,
) (bool, error) {
	entry, err := ledgerRepo.GetForUpdate(ctx, item.ProductID, day)
	if err != nil {
		return false, err
	}
	created := false
	if entry != nil {
		stockledger.Apply(entry, item.SoldDelta, item.PurchasedDelta)
	} else {
		opening, err := resolveOpening(ctx, ledgerRepo, productRepo, item.ProductID, day)
		if err != nil {
			return false, err
		}
		entry = stockledger.NewEntry(item.ProductID, day, opening, item.SoldDelta, item.PurchasedDelta)
		created = true
	}
	if err := ledgerRepo.Upsert(ctx, entry); err != nil {
		return false, err
	}
	return created, nil
}

// resolveOpening: cierre del día anterior si existe; si no, el stock actual del producto.
func resolveOpening(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	productID int64,
	day time.Time,
) (int, error) {
	prev, err := ledgerRepo.Get(ctx, productID, stockledger.PreviousDate(day))
	if err != nil {
		return 0, err
	}
	if prev != nil {
		return prev.ClosingStock, nil
	}
	return productRepo.GetCurrentStock(ctx, productID)
}
