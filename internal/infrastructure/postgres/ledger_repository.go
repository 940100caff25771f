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

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerTable = "daily_stock_ledger"

var ledgerColumns = []string{"product_id", "date", "opening_stock", "purchased_qty", "sold_qty", "closing_stock"}

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con pool o tx).
type LedgerRepo struct {
	q       Querier
	builder sq.StatementBuilderType
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{
		q:       q,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get obtiene la fila (producto, día) o nil si no existe.
func (r *LedgerRepo) Get(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error) {
	return r.get(ctx, productID, date, "")
}

// GetForUpdate bloquea primero la fila del producto (SELECT FOR UPDATE) para serializar las
// mutaciones del mismo producto, incluso cuando la fila del día todavía no existe.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error) {
	query, args, err := r.builder.Select("id").From("products").Where(sq.Eq{"id": productID}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var id int64
	if err := pgxscan.Get(ctx, r.q, &id, query, args...); err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return r.get(ctx, productID, date, "FOR UPDATE")
}

func (r *LedgerRepo) get(ctx context.Context, productID int64, date time.Time, suffix string) (*entity.StockLedgerEntry, error) {
	qb := r.builder.Select(ledgerColumns...).
		From(ledgerTable).
		Where(sq.Eq{"product_id": productID, "date": stockledger.Day(date)})
	if suffix != "" {
		qb = qb.Suffix(suffix)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var e entity.StockLedgerEntry
	if err := pgxscan.Get(ctx, r.q, &e, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	e.Date = stockledger.Day(e.Date)
	return &e, nil
}

// Upsert inserta o actualiza la fila (producto, día) con ON CONFLICT sobre la PK.
func (r *LedgerRepo) Upsert(ctx context.Context, e *entity.StockLedgerEntry) error {
	query, args, err := r.builder.Insert(ledgerTable).
		Columns(append(ledgerColumns, "updated_at")...).
		Values(e.ProductID, stockledger.Day(e.Date), e.OpeningStock, e.PurchasedQty, e.SoldQty, e.ClosingStock,
			sq.Expr("now()")).
		Suffix(`ON CONFLICT (product_id, date) DO UPDATE SET
			opening_stock = EXCLUDED.opening_stock,
			purchased_qty = EXCLUDED.purchased_qty,
			sold_qty      = EXCLUDED.sold_qty,
			closing_stock = EXCLUDED.closing_stock,
			updated_at    = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return mapWriteError("upsert ledger entry", err)
	}
	return nil
}

// ListRange lista las filas del rango ordenadas por fecha y producto.
func (r *LedgerRepo) ListRange(ctx context.Context, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	qb := r.builder.Select(ledgerColumns...).
		From(ledgerTable).
		Where(sq.GtOrEq{"date": stockledger.Day(f.Start)}).
		Where(sq.LtOrEq{"date": stockledger.Day(f.End)}).
		OrderBy("date", "product_id")
	if f.ProductID > 0 {
		qb = qb.Where(sq.Eq{"product_id": f.ProductID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []*entity.StockLedgerEntry
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	for _, e := range list {
		e.Date = stockledger.Day(e.Date)
	}
	return list, nil
}

// DeleteRange elimina las filas del rango inclusivo y devuelve cuántas borró.
func (r *LedgerRepo) DeleteRange(ctx context.Context, start, end time.Time) (int64, error) {
	query, args, err := r.builder.Delete(ledgerTable).
		Where(sq.GtOrEq{"date": stockledger.Day(start)}).
		Where(sq.LtOrEq{"date": stockledger.Day(end)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete ledger range: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListDemand devuelve sold_qty > 0 por producto y día.
func (r *LedgerRepo) ListDemand(ctx context.Context, since time.Time, productID int64) ([]entity.DemandObservation, error) {
	qb := r.builder.Select("product_id", "date", "sold_qty AS quantity").
		From(ledgerTable).
		Where(sq.Gt{"sold_qty": 0}).
		OrderBy("product_id", "date")
	if !since.IsZero() {
		qb = qb.Where(sq.GtOrEq{"date": stockledger.Day(since)})
	}
	if productID > 0 {
		qb = qb.Where(sq.Eq{"product_id": productID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []entity.DemandObservation
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger demand: %w", err)
	}
	return list, nil
}
