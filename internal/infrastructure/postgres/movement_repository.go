package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo consultas agregadas de ventas y recepciones (read-only).
type MovementRepo struct {
	q       Querier
	builder sq.StatementBuilderType
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{
		q:       q,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// DailySales suma las líneas de ventas completadas por producto y día.
func (r *MovementRepo) DailySales(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error) {
	qb := r.builder.Select("si.product_id", "CAST(s.sale_date AS date) AS date", "SUM(si.quantity)::int AS quantity").
		From("sale_items si").
		Join("sales s ON s.id = si.sale_id").
		Where(sq.Eq{"s.status": entity.SaleStatusCompleted}).
		GroupBy("si.product_id", "CAST(s.sale_date AS date)").
		OrderBy("si.product_id", "date")
	qb = withDayRange(qb, "CAST(s.sale_date AS date)", start, end)
	return r.observations(ctx, qb, "daily sales")
}

// DailyReceipts suma las cantidades recibidas de órdenes de compra por producto y día.
func (r *MovementRepo) DailyReceipts(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error) {
	qb := r.builder.Select("poi.product_id", "CAST(po.received_date AS date) AS date", "SUM(poi.quantity_received)::int AS quantity").
		From("purchase_order_items poi").
		Join("purchase_orders po ON po.id = poi.purchase_order_id").
		Where(sq.Eq{"po.status": entity.PurchaseOrderStatusReceived}).
		Where(sq.NotEq{"po.received_date": nil}).
		GroupBy("poi.product_id", "CAST(po.received_date AS date)").
		OrderBy("poi.product_id", "date")
	qb = withDayRange(qb, "CAST(po.received_date AS date)", start, end)
	return r.observations(ctx, qb, "daily receipts")
}

func (r *MovementRepo) observations(ctx context.Context, qb sq.SelectBuilder, what string) ([]entity.DemandObservation, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []entity.DemandObservation
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	for i := range list {
		list[i].Date = stockledger.Day(list[i].Date)
	}
	return list, nil
}

func withDayRange(qb sq.SelectBuilder, column string, start, end time.Time) sq.SelectBuilder {
	if !start.IsZero() {
		qb = qb.Where(sq.GtOrEq{column: stockledger.Day(start)})
	}
	if !end.IsZero() {
		qb = qb.Where(sq.LtOrEq{column: stockledger.Day(end)})
	}
	return qb
}
