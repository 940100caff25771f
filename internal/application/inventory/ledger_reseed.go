package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// MaxReseedDays límite del rango de reconstrucción.
const MaxReseedDays = 366

// ReseedResult conteos de una reconstrucción.
type ReseedResult struct {
	Start   time.Time
	End     time.Time
	Days    int
	Deleted int64
	Created int
}

// Reseed reconstruye el libro en [start, end]: borra las filas del rango y las vuelve a generar
// día por día, para cada producto, con las ventas completadas y las recepciones de OC de ese día.
// Las aperturas se encadenan dentro del rango; el primer día resuelve su apertura igual que ApplyDelta.
// No modifica current_stock. Todo ocurre en una transacción.
func (uc *LedgerReconcilerUseCase) Reseed(ctx context.Context, start, end time.Time) (*ReseedResult, error) {
	start, end = stockledger.Day(start), stockledger.Day(end)
	if start.After(end) {
		return nil, fmt.Errorf("reseed: inicio posterior al fin: %w", domain.ErrInvalidInput)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > MaxReseedDays {
		return nil, fmt.Errorf("reseed: rango de %d días excede %d: %w", days, MaxReseedDays, domain.ErrInvalidInput)
	}

	res := &ReseedResult{Start: start, End: end, Days: days}
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		deleted, err := ledgerRepo.DeleteRange(ctx, start, end)
		if err != nil {
			return err
		}
		res.Deleted = deleted

		sales, err := movementRepo.DailySales(ctx, start, end)
		if err != nil {
			return err
		}
		receipts, err := movementRepo.DailyReceipts(ctx, start, end)
		if err != nil {
			return err
		}
		productIDs, err := productRepo.ListIDs(ctx)
		if err != nil {
			return err
		}
		sold := indexByProductDay(sales)
		received := indexByProductDay(receipts)

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			key := stockledger.FormatDate(day)
			for _, id := range productIDs {
				item := DeltaItem{
					ProductID:      id,
					SoldDelta:      sold[id][key],
					PurchasedDelta: received[id][key],
				}
				created, err := applyDelta(ctx, ledgerRepo, productRepo, item, day)
				if err != nil {
					return fmt.Errorf("reseed %s producto %d: %w", key, id, err)
				}
				if created {
					res.Created++
				}
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("start", stockledger.FormatDate(start)).
			Str("end", stockledger.FormatDate(end)).
			Msg("reconstrucción del libro revertida")
		return nil, err
	}

	uc.log.Info().
		Str("start", stockledger.FormatDate(start)).
		Str("end", stockledger.FormatDate(end)).
		Int64("deleted", res.Deleted).
		Int("created", res.Created).
		Msg("libro de stock reconstruido")
	return res, nil
}

func indexByProductDay(obs []entity.DemandObservation) map[int64]map[string]int {
	idx := make(map[int64]map[string]int)
	for _, o := range obs {
		byDay, ok := idx[o.ProductID]
		if !ok {
			byDay = make(map[string]int)
			idx[o.ProductID] = byDay
		}
		byDay[stockledger.FormatDate(o.Date)] += o.Quantity
	}
	return idx
}
