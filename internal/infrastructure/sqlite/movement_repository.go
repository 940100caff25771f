package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo consultas agregadas de ventas y recepciones sobre SQLite.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar db o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// DailySales suma las líneas de ventas completadas por producto y día.
func (r *MovementRepo) DailySales(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error) {
	qb := builder.Select("si.product_id", "DATE(s.sale_date) AS day", "SUM(si.quantity) AS quantity").
		From("sale_items si").
		Join("sales s ON s.id = si.sale_id").
		Where(sq.Eq{"s.status": entity.SaleStatusCompleted}).
		GroupBy("si.product_id", "DATE(s.sale_date)").
		OrderBy("si.product_id", "day")
	qb = withDayRange(qb, "DATE(s.sale_date)", start, end)
	return r.observations(ctx, qb, "daily sales")
}

// DailyReceipts suma las cantidades recibidas de órdenes de compra por producto y día.
func (r *MovementRepo) DailyReceipts(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error) {
	qb := builder.Select("poi.product_id", "DATE(po.received_date) AS day", "SUM(poi.quantity_received) AS quantity").
		From("purchase_order_items poi").
		Join("purchase_orders po ON po.id = poi.purchase_order_id").
		Where(sq.Eq{"po.status": entity.PurchaseOrderStatusReceived}).
		Where(sq.NotEq{"po.received_date": nil}).
		GroupBy("poi.product_id", "DATE(po.received_date)").
		OrderBy("poi.product_id", "day")
	qb = withDayRange(qb, "DATE(po.received_date)", start, end)
	return r.observations(ctx, qb, "daily receipts")
}

func (r *MovementRepo) observations(ctx context.Context, qb sq.SelectBuilder, what string) ([]entity.DemandObservation, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return scanObservations(rows)
}

func withDayRange(qb sq.SelectBuilder, column string, start, end time.Time) sq.SelectBuilder {
	if !start.IsZero() {
		qb = qb.Where(sq.GtOrEq{column: stockledger.FormatDate(start)})
	}
	if !end.IsZero() {
		qb = qb.Where(sq.LtOrEq{column: stockledger.FormatDate(end)})
	}
	return qb
}
