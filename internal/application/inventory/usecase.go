package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// defaultReportDays ventana por defecto del reporte diario cuando no se envía start_date.
const defaultReportDays = 30

// ApplyDeltasFromRequest adapta el request HTTP a ApplyDeltaBatch. Valida fecha y productos.
func (uc *LedgerReconcilerUseCase) ApplyDeltasFromRequest(ctx context.Context, in dto.ApplyDeltasRequest) error {
	date, err := stockledger.ParseDate(in.Date)
	if err != nil {
		return err
	}
	items := make([]DeltaItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("productId %d: %w", it.ProductID, domain.ErrInvalidInput)
		}
		items = append(items, DeltaItem{
			ProductID:      it.ProductID,
			SoldDelta:      it.SoldDelta,
			PurchasedDelta: it.PurchasedDelta,
		})
	}
	return uc.ApplyDeltaBatch(ctx, items, date)
}

// ListFromQuery adapta GET /api/stock-ledger. Por defecto: últimos 30 días hasta hoy.
func (uc *LedgerReconcilerUseCase) ListFromQuery(ctx context.Context, q dto.LedgerQuery, now time.Time) ([]dto.LedgerEntryDTO, error) {
	end := stockledger.Day(now)
	if q.EndDate != "" {
		d, err := stockledger.ParseDate(q.EndDate)
		if err != nil {
			return nil, err
		}
		end = d
	}
	start := end.AddDate(0, 0, -defaultReportDays)
	if q.StartDate != "" {
		d, err := stockledger.ParseDate(q.StartDate)
		if err != nil {
			return nil, err
		}
		start = d
	}
	if start.After(end) {
		return nil, fmt.Errorf("start_date posterior a end_date: %w", domain.ErrInvalidInput)
	}

	entries, err := uc.ListRange(ctx, repository.LedgerFilter{Start: start, End: end, ProductID: q.ProductID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToLedgerEntryDTO(e))
	}
	return out, nil
}

// ReseedFromRequest adapta POST /api/stock-ledger/reseed.
func (uc *LedgerReconcilerUseCase) ReseedFromRequest(ctx context.Context, in dto.ReseedRequest) (*dto.ReseedResultDTO, error) {
	start, err := stockledger.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := stockledger.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	res, err := uc.Reseed(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.ReseedResultDTO{
		StartDate: stockledger.FormatDate(res.Start),
		EndDate:   stockledger.FormatDate(res.End),
		Days:      res.Days,
		Deleted:   res.Deleted,
		Created:   res.Created,
	}, nil
}
